package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"civreg/internal/registry/metrics"
	"civreg/internal/registry/models"
	"civreg/internal/registry/store"
	"civreg/pkg/domain"
	dErrors "civreg/pkg/domain-errors"
	"civreg/pkg/requestcontext"
)

var tracer = otel.Tracer("registry")

// ResidentStore persists residents.
type ResidentStore interface {
	CountByBiometricToken(ctx context.Context, token string) (int, error)
	Create(ctx context.Context, r *models.Resident) error
	UpdateContact(ctx context.Context, cmd models.UpdateCommand) (int64, error)
	Delete(ctx context.Context, id domain.NationalID) (int64, error)
	ListAll(ctx context.Context) ([]*models.Resident, error)
}

// ConflictStore appends deduplication conflicts.
type ConflictStore interface {
	Append(ctx context.Context, c *models.Conflict) error
}

// Service owns writes to residents and deduplication conflicts.
type Service struct {
	residents ResidentStore
	conflicts ConflictStore
	tx        StoreTx
	logger    *slog.Logger
	metrics   *metrics.Metrics
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

// WithStoreTx replaces the default in-memory lock with a real transaction runner.
func WithStoreTx(tx StoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

func New(residents ResidentStore, conflicts ConflictStore, opts ...Option) *Service {
	s := &Service{residents: residents, conflicts: conflicts}
	for _, opt := range opts {
		opt(s)
	}
	if s.tx == nil {
		s.tx = newInMemoryStoreTx()
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Enroll creates a resident unless its biometric token is already enrolled,
// in which case a pending conflict is recorded instead. The check and the
// write happen in one unit of work; the unique index on biometric_token
// catches enrollments that race past the check.
func (s *Service) Enroll(ctx context.Context, cmd models.EnrollCommand) *models.Outcome {
	ctx, span := tracer.Start(ctx, "Registry.Service.Enroll")
	defer span.End()

	now := requestcontext.Now(ctx)
	resident, err := models.NewResident(cmd, now)
	if err != nil {
		return s.fail(ctx, span, "enroll", err)
	}

	var duplicate bool
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.residents.CountByBiometricToken(txCtx, cmd.BiometricToken)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to check biometric token")
		}
		if n > 0 {
			duplicate = true
			return s.recordConflict(txCtx, cmd.BiometricToken, cmd.NationalID)
		}
		return s.residents.Create(txCtx, resident)
	})

	switch {
	case err == nil && duplicate:
		return s.conflictDetected(ctx, span, cmd)
	case err == nil:
		s.metrics.IncrementEnrollment(string(models.OutcomeCreated))
		s.logger.InfoContext(ctx, "resident enrolled",
			"national_id", cmd.NationalID.Masked(),
			"request_id", requestcontext.RequestID(ctx),
		)
		return models.Created()
	case errors.Is(err, store.ErrBiometricInUse):
		// The insert lost a race with a concurrent enrollment of the same token.
		// The failed transaction is gone, so the conflict goes in its own.
		if err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
			return s.recordConflict(txCtx, cmd.BiometricToken, cmd.NationalID)
		}); err != nil {
			return s.fail(ctx, span, "enroll", err)
		}
		return s.conflictDetected(ctx, span, cmd)
	case errors.Is(err, store.ErrNationalIDInUse):
		return s.fail(ctx, span, "enroll", dErrors.New(dErrors.CodeConflict, "national identifier already enrolled"))
	default:
		return s.fail(ctx, span, "enroll", err)
	}
}

func (s *Service) recordConflict(ctx context.Context, token string, attempted domain.NationalID) error {
	c := models.NewConflict(token, attempted, requestcontext.Now(ctx))
	if err := s.conflicts.Append(ctx, c); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record deduplication conflict")
	}
	return nil
}

func (s *Service) conflictDetected(ctx context.Context, span trace.Span, cmd models.EnrollCommand) *models.Outcome {
	s.metrics.IncrementEnrollment(string(models.OutcomeConflict))
	s.metrics.IncrementConflict()
	span.SetAttributes(attribute.Bool("registry.duplicate_biometric", true))
	s.logger.WarnContext(ctx, "enrollment refused: biometric token already enrolled",
		"national_id", cmd.NationalID.Masked(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return models.ConflictDetected()
}

// UpdateDetails replaces a resident's address, phone and email. Matching no
// resident is not an error; RowsAffected tells the caller.
func (s *Service) UpdateDetails(ctx context.Context, cmd models.UpdateCommand) *models.Outcome {
	ctx, span := tracer.Start(ctx, "Registry.Service.UpdateDetails")
	defer span.End()

	if err := cmd.Validate(); err != nil {
		return s.fail(ctx, span, "update", err)
	}

	var rows int64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = s.residents.UpdateContact(txCtx, cmd)
		return err
	})
	if err != nil {
		return s.fail(ctx, span, "update", err)
	}

	s.metrics.IncrementMutation("update", rows > 0)
	span.SetAttributes(attribute.Int64("registry.rows_affected", rows))
	return models.Updated(rows)
}

// Delete removes a resident. Historical authentication and conflict rows
// that reference the identifier are kept.
func (s *Service) Delete(ctx context.Context, id domain.NationalID) *models.Outcome {
	ctx, span := tracer.Start(ctx, "Registry.Service.Delete")
	defer span.End()

	if id.IsNil() {
		return s.fail(ctx, span, "delete", dErrors.New(dErrors.CodeValidation, "national identifier is required"))
	}

	var rows int64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		rows, err = s.residents.Delete(txCtx, id)
		return err
	})
	if err != nil {
		return s.fail(ctx, span, "delete", err)
	}

	s.metrics.IncrementMutation("delete", rows > 0)
	span.SetAttributes(attribute.Int64("registry.rows_affected", rows))
	if rows > 0 {
		s.logger.InfoContext(ctx, "resident deleted",
			"national_id", id.Masked(),
			"request_id", requestcontext.RequestID(ctx),
		)
	}
	return models.Deleted(rows)
}

// ListAll returns every resident, most recently enrolled first.
func (s *Service) ListAll(ctx context.Context) ([]*models.Resident, error) {
	ctx, span := tracer.Start(ctx, "Registry.Service.ListAll")
	defer span.End()

	residents, err := s.residents.ListAll(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list residents")
		s.logger.ErrorContext(ctx, "failed to list residents",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list residents")
	}
	return residents, nil
}

// fail logs the cause and folds it into an error outcome.
func (s *Service) fail(ctx context.Context, span trace.Span, op string, err error) *models.Outcome {
	span.RecordError(err)
	span.SetStatus(codes.Error, op)
	if op == "enroll" {
		s.metrics.IncrementEnrollment(string(models.OutcomeError))
	}

	code := dErrors.CodeOf(err)
	level := slog.LevelWarn
	if code == dErrors.CodeInternal || code == dErrors.CodeTimeout {
		level = slog.LevelError
	}
	s.logger.Log(ctx, level, "registry operation failed",
		"operation", op,
		"code", string(code),
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return models.Failed(err)
}
