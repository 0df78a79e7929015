package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"civreg/internal/authentication/models"
	"civreg/internal/platform/postgres"
)

// PostgresAttemptStore appends to authentication_log.
type PostgresAttemptStore struct {
	db *sqlx.DB
}

func NewPostgresAttemptStore(db *sqlx.DB) *PostgresAttemptStore {
	return &PostgresAttemptStore{db: db}
}

// Append is idempotent on the attempt key: re-sending an insert whose commit
// was not acknowledged returns the existing row's id.
func (s *PostgresAttemptStore) Append(ctx context.Context, a *models.Attempt) error {
	err := postgres.ExecerFrom(ctx, s.db).QueryRowxContext(ctx, `
		INSERT INTO authentication_log (attempt_key, national_id, attempted_at, is_successful, failure_reason, requester_ip)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (attempt_key) DO UPDATE SET attempt_key = EXCLUDED.attempt_key
		RETURNING id`,
		a.Key, a.NationalID, a.AttemptedAt, a.Successful, a.FailureReason, a.RequesterIP,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert authentication attempt: %w", err)
	}
	return nil
}
