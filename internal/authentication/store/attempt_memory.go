package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"civreg/internal/authentication/models"
)

// InMemoryAttemptStore is an append-only log of attempts.
type InMemoryAttemptStore struct {
	mu       sync.RWMutex
	attempts []models.Attempt
	byKey    map[uuid.UUID]int64
	nextID   int64
}

func NewInMemoryAttemptStore() *InMemoryAttemptStore {
	return &InMemoryAttemptStore{byKey: make(map[uuid.UUID]int64)}
}

// Append stores a once per key; repeating it returns the existing id.
func (s *InMemoryAttemptStore) Append(_ context.Context, a *models.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byKey[a.Key]; ok {
		a.ID = id
		return nil
	}
	s.nextID++
	a.ID = s.nextID
	s.byKey[a.Key] = a.ID
	s.attempts = append(s.attempts, *a)
	return nil
}

// ListAll returns attempts newest first.
func (s *InMemoryAttemptStore) ListAll(_ context.Context) ([]*models.Attempt, error) {
	s.mu.RLock()
	out := make([]*models.Attempt, 0, len(s.attempts))
	for i := range s.attempts {
		a := s.attempts[i]
		out = append(out, &a)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].AttemptedAt.Equal(out[j].AttemptedAt) {
			return out[i].AttemptedAt.After(out[j].AttemptedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// CountByOutcome returns successful and failed totals from one locked read.
func (s *InMemoryAttemptStore) CountByOutcome(_ context.Context) (successful, failed int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.attempts {
		if a.Successful {
			successful++
		} else {
			failed++
		}
	}
	return successful, failed, nil
}
