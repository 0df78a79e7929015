package service

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"civreg/internal/authentication/metrics"
	"civreg/internal/authentication/models"
	"civreg/pkg/domain"
	"civreg/pkg/requestcontext"
)

var tracer = otel.Tracer("authentication")

// CredentialLookup reads what a decision needs about a resident in one read.
// A missing resident is (nil, nil).
type CredentialLookup interface {
	FindCredential(ctx context.Context, claimedID string) (*models.Credential, error)
}

// AttemptStore appends to the authentication audit log.
type AttemptStore interface {
	Append(ctx context.Context, a *models.Attempt) error
}

// Service decides authentication requests and records every decision.
type Service struct {
	credentials   CredentialLookup
	attempts      AttemptStore
	logger        *slog.Logger
	metrics       *metrics.Metrics
	appendBackOff func() backoff.BackOff
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithAppendBackOff overrides the retry schedule for audit appends.
func WithAppendBackOff(fn func() backoff.BackOff) Option {
	return func(s *Service) {
		s.appendBackOff = fn
	}
}

func New(credentials CredentialLookup, attempts AttemptStore, opts ...Option) *Service {
	s := &Service{credentials: credentials, attempts: attempts}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.appendBackOff == nil {
		s.appendBackOff = defaultAppendBackOff
	}
	return s
}

// Authenticate compares token against the token enrolled under nationalID.
//
// Every decision produces exactly one audit record. The record is written
// after the decision read, in its own unit of work, and the call reports
// failure unless it was stored. A failed lookup is not a decision and is not
// recorded.
func (s *Service) Authenticate(ctx context.Context, nationalID, token string) *models.Result {
	ctx, span := tracer.Start(ctx, "Authentication.Service.Authenticate")
	defer span.End()

	masked := domain.MaskIdentifier(nationalID)
	requestID := requestcontext.RequestID(ctx)

	cred, err := s.credentials.FindCredential(ctx, nationalID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "credential lookup")
		s.metrics.IncrementDecision("error")
		s.logger.ErrorContext(ctx, "credential lookup failed",
			"national_id", masked,
			"error", err,
			"request_id", requestID,
		)
		return models.Failure()
	}

	attempt := models.NewAttempt(nationalID, requestcontext.Now(ctx), requestcontext.ClientIP(ctx))
	result := models.Failure()
	switch {
	case cred == nil:
		attempt.Fail(models.ReasonIdentifierNotFound)
	case subtle.ConstantTimeCompare([]byte(cred.BiometricToken), []byte(token)) == 1:
		attempt.Succeed()
		result = &models.Result{Success: true, Details: cred.EKYC()}
	default:
		attempt.Fail(models.ReasonBiometricMismatch)
	}

	if err := s.appendAttempt(ctx, attempt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "audit append")
		s.metrics.IncrementDecision("error")
		s.metrics.IncrementAuditAppendFailure()
		s.logger.ErrorContext(ctx, "authentication decision withheld: audit append failed",
			"national_id", masked,
			"error", err,
			"request_id", requestID,
		)
		return models.Failure()
	}

	label := "success"
	if attempt.FailureReason != nil {
		label = reasonLabel(*attempt.FailureReason)
	}
	s.metrics.IncrementDecision(label)
	span.SetAttributes(
		attribute.Bool("authentication.success", result.Success),
		attribute.String("authentication.result", label),
	)
	s.logger.InfoContext(ctx, "authentication decided",
		"national_id", masked,
		"result", label,
		"request_id", requestID,
	)
	return result
}

func (s *Service) appendAttempt(ctx context.Context, a *models.Attempt) error {
	tries := 0
	op := func() error {
		if tries > 0 {
			s.metrics.IncrementAuditAppendRetry()
		}
		tries++
		return s.attempts.Append(ctx, a)
	}
	return backoff.Retry(op, backoff.WithContext(s.appendBackOff(), ctx))
}

func reasonLabel(r models.FailureReason) string {
	switch r {
	case models.ReasonIdentifierNotFound:
		return "identifier_not_found"
	case models.ReasonBiometricMismatch:
		return "biometric_mismatch"
	default:
		return "failure"
	}
}
