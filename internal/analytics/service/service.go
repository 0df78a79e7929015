package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"civreg/internal/analytics/metrics"
	"civreg/internal/analytics/models"
	authmodels "civreg/internal/authentication/models"
	registrymodels "civreg/internal/registry/models"
	dErrors "civreg/pkg/domain-errors"
	"civreg/pkg/requestcontext"
)

var tracer = otel.Tracer("analytics")

// Store is the read-only view analytics needs.
type Store interface {
	Counts(ctx context.Context) (*models.Counts, error)
	ListAuthLog(ctx context.Context) ([]*authmodels.Attempt, error)
	ListConflicts(ctx context.Context) ([]*registrymodels.Conflict, error)
}

type Service struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	group   singleflight.Group
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

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

const insightsKey = "insights"

// ComputeInsights aggregates enrollment, authentication and conflict counts.
// It returns either a complete Insights or an error. Concurrent callers share
// one computation.
func (s *Service) ComputeInsights(ctx context.Context) (*models.Insights, error) {
	ctx, span := tracer.Start(ctx, "Analytics.Service.ComputeInsights")
	defer span.End()

	v, err, shared := s.group.Do(insightsKey, func() (any, error) {
		start := time.Now()
		counts, err := s.store.Counts(ctx)
		s.metrics.ObserveQuery("counts", time.Since(start), err)
		if err != nil {
			return nil, err
		}
		return models.NewInsights(*counts, requestcontext.Now(ctx)), nil
	})
	if shared {
		s.metrics.IncrementShared()
	}
	if err != nil {
		return nil, s.readFailed(ctx, span, "compute insights", err)
	}

	insights := v.(*models.Insights)
	s.metrics.SetSuccessRate(insights.SuccessRate)
	span.SetAttributes(
		attribute.Int64("analytics.total_auth_attempts", insights.TotalAuthAttempts),
		attribute.Bool("analytics.high_failure_alert", insights.HighFailureAlert),
	)
	if insights.HighFailureAlert {
		s.logger.WarnContext(ctx, "authentication failure rate is high",
			"successful_auth", insights.SuccessfulAuth,
			"failed_auth", insights.FailedAuth,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return insights, nil
}

// ListAuthLog returns every authentication attempt, newest first.
func (s *Service) ListAuthLog(ctx context.Context) ([]*authmodels.Attempt, error) {
	ctx, span := tracer.Start(ctx, "Analytics.Service.ListAuthLog")
	defer span.End()

	start := time.Now()
	attempts, err := s.store.ListAuthLog(ctx)
	s.metrics.ObserveQuery("auth_log", time.Since(start), err)
	if err != nil {
		return nil, s.readFailed(ctx, span, "list authentication log", err)
	}
	return attempts, nil
}

// ListConflicts returns every deduplication conflict, newest first.
func (s *Service) ListConflicts(ctx context.Context) ([]*registrymodels.Conflict, error) {
	ctx, span := tracer.Start(ctx, "Analytics.Service.ListConflicts")
	defer span.End()

	start := time.Now()
	conflicts, err := s.store.ListConflicts(ctx)
	s.metrics.ObserveQuery("conflicts", time.Since(start), err)
	if err != nil {
		return nil, s.readFailed(ctx, span, "list deduplication conflicts", err)
	}
	return conflicts, nil
}

func (s *Service) readFailed(ctx context.Context, span trace.Span, op string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	s.logger.ErrorContext(ctx, "analytics read failed",
		"operation", op,
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+op)
}
