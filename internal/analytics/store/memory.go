package store

import (
	"context"

	"civreg/internal/analytics/models"
	authmodels "civreg/internal/authentication/models"
	registrymodels "civreg/internal/registry/models"
)

type residentCounter interface {
	Count(ctx context.Context) (int, error)
}

type attemptLog interface {
	ListAll(ctx context.Context) ([]*authmodels.Attempt, error)
	CountByOutcome(ctx context.Context) (successful, failed int, err error)
}

type conflictLog interface {
	ListAll(ctx context.Context) ([]*registrymodels.Conflict, error)
	Count(ctx context.Context) (int, error)
}

// InMemoryStore reads the in-memory registry and authentication stores.
// Counts are taken store by store, so they are only consistent when no
// writer is running.
type InMemoryStore struct {
	residents residentCounter
	attempts  attemptLog
	conflicts conflictLog
}

func NewInMemoryStore(residents residentCounter, attempts attemptLog, conflicts conflictLog) *InMemoryStore {
	return &InMemoryStore{residents: residents, attempts: attempts, conflicts: conflicts}
}

func (s *InMemoryStore) Counts(ctx context.Context) (*models.Counts, error) {
	enrolled, err := s.residents.Count(ctx)
	if err != nil {
		return nil, err
	}
	successful, failed, err := s.attempts.CountByOutcome(ctx)
	if err != nil {
		return nil, err
	}
	conflicts, err := s.conflicts.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &models.Counts{
		TotalEnrollments:       int64(enrolled),
		SuccessfulAuth:         int64(successful),
		FailedAuth:             int64(failed),
		DeduplicationConflicts: int64(conflicts),
	}, nil
}

func (s *InMemoryStore) ListAuthLog(ctx context.Context) ([]*authmodels.Attempt, error) {
	return s.attempts.ListAll(ctx)
}

func (s *InMemoryStore) ListConflicts(ctx context.Context) ([]*registrymodels.Conflict, error) {
	return s.conflicts.ListAll(ctx)
}
