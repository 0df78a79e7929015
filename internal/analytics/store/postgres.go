package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"civreg/internal/analytics/models"
	authmodels "civreg/internal/authentication/models"
	registrymodels "civreg/internal/registry/models"
)

// PostgresStore answers read-only analytics queries.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Counts reads all four counters in one statement so they share a snapshot.
func (s *PostgresStore) Counts(ctx context.Context) (*models.Counts, error) {
	var c models.Counts
	err := s.db.GetContext(ctx, &c, `
		SELECT
			(SELECT COUNT(*) FROM residents) AS total_enrollments,
			(SELECT COUNT(*) FROM authentication_log WHERE is_successful) AS successful_auth,
			(SELECT COUNT(*) FROM authentication_log WHERE NOT is_successful) AS failed_auth,
			(SELECT COUNT(*) FROM deduplication_conflicts) AS deduplication_conflicts`)
	if err != nil {
		return nil, fmt.Errorf("count registry tables: %w", err)
	}
	return &c, nil
}

func (s *PostgresStore) ListAuthLog(ctx context.Context) ([]*authmodels.Attempt, error) {
	attempts := []*authmodels.Attempt{}
	err := s.db.SelectContext(ctx, &attempts, `
		SELECT id, national_id, attempted_at, is_successful, failure_reason, requester_ip
		FROM authentication_log
		ORDER BY attempted_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list authentication log: %w", err)
	}
	return attempts, nil
}

func (s *PostgresStore) ListConflicts(ctx context.Context) ([]*registrymodels.Conflict, error) {
	conflicts := []*registrymodels.Conflict{}
	err := s.db.SelectContext(ctx, &conflicts, `
		SELECT id, biometric_token, attempted_national_id, conflict_at, status
		FROM deduplication_conflicts
		ORDER BY conflict_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list deduplication conflicts: %w", err)
	}
	return conflicts, nil
}
