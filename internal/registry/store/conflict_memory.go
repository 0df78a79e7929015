package store

import (
	"context"
	"sort"
	"sync"

	"civreg/internal/registry/models"
)

// InMemoryConflictStore is an append-only slice of conflicts.
type InMemoryConflictStore struct {
	mu        sync.RWMutex
	conflicts []models.Conflict
	nextID    int64
}

func NewInMemoryConflictStore() *InMemoryConflictStore {
	return &InMemoryConflictStore{}
}

func (s *InMemoryConflictStore) Append(_ context.Context, c *models.Conflict) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	c.ID = s.nextID
	if c.Status == "" {
		c.Status = models.ConflictStatusPending
	}
	s.conflicts = append(s.conflicts, *c)
	return nil
}

// ListAll returns conflicts newest first.
func (s *InMemoryConflictStore) ListAll(_ context.Context) ([]*models.Conflict, error) {
	s.mu.RLock()
	out := make([]*models.Conflict, 0, len(s.conflicts))
	for i := range s.conflicts {
		c := s.conflicts[i]
		out = append(out, &c)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ConflictAt.Equal(out[j].ConflictAt) {
			return out[i].ConflictAt.After(out[j].ConflictAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *InMemoryConflictStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conflicts), nil
}
