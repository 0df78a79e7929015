package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"civreg/internal/platform/postgres"
	"civreg/internal/registry/models"
)

// PostgresConflictStore appends to deduplication_conflicts.
type PostgresConflictStore struct {
	db *sqlx.DB
}

func NewPostgresConflictStore(db *sqlx.DB) *PostgresConflictStore {
	return &PostgresConflictStore{db: db}
}

func (s *PostgresConflictStore) Append(ctx context.Context, c *models.Conflict) error {
	if c.Status == "" {
		c.Status = models.ConflictStatusPending
	}
	err := postgres.ExecerFrom(ctx, s.db).QueryRowxContext(ctx, `
		INSERT INTO deduplication_conflicts (biometric_token, attempted_national_id, conflict_at, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		c.BiometricToken, c.AttemptedNationalID, c.ConflictAt, c.Status,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert deduplication conflict: %w", err)
	}
	return nil
}
