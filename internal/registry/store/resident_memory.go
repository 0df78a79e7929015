package store

import (
	"context"
	"sort"
	"sync"

	"civreg/internal/registry/models"
	"civreg/pkg/domain"
)

// InMemoryResidentStore keeps residents in a map keyed by national identifier,
// with a secondary index on biometric token mirroring the table's unique key.
type InMemoryResidentStore struct {
	mu          sync.RWMutex
	residents   map[domain.NationalID]models.Resident
	byBiometric map[string]domain.NationalID
}

func NewInMemoryResidentStore() *InMemoryResidentStore {
	return &InMemoryResidentStore{
		residents:   make(map[domain.NationalID]models.Resident),
		byBiometric: make(map[string]domain.NationalID),
	}
}

func (s *InMemoryResidentStore) CountByBiometricToken(_ context.Context, token string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.byBiometric[token]; ok {
		return 1, nil
	}
	return 0, nil
}

func (s *InMemoryResidentStore) Create(_ context.Context, r *models.Resident) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.residents[r.NationalID]; ok {
		return ErrNationalIDInUse
	}
	if _, ok := s.byBiometric[r.BiometricToken]; ok {
		return ErrBiometricInUse
	}
	s.residents[r.NationalID] = *r
	s.byBiometric[r.BiometricToken] = r.NationalID
	return nil
}

// FindByNationalID returns nil, nil when no resident matches.
func (s *InMemoryResidentStore) FindByNationalID(_ context.Context, id domain.NationalID) (*models.Resident, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.residents[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (s *InMemoryResidentStore) UpdateContact(_ context.Context, cmd models.UpdateCommand) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.residents[cmd.NationalID]
	if !ok {
		return 0, nil
	}
	r.CurrentAddress = cmd.CurrentAddress
	r.PhoneNumber = cmd.PhoneNumber
	r.EmailAddress = cmd.EmailAddress
	s.residents[cmd.NationalID] = r
	return 1, nil
}

func (s *InMemoryResidentStore) Delete(_ context.Context, id domain.NationalID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.residents[id]
	if !ok {
		return 0, nil
	}
	delete(s.residents, id)
	delete(s.byBiometric, r.BiometricToken)
	return 1, nil
}

func (s *InMemoryResidentStore) ListAll(_ context.Context) ([]*models.Resident, error) {
	s.mu.RLock()
	out := make([]*models.Resident, 0, len(s.residents))
	for _, r := range s.residents {
		out = append(out, &r)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].EnrollmentDate.Equal(out[j].EnrollmentDate) {
			return out[i].EnrollmentDate.After(out[j].EnrollmentDate)
		}
		return out[i].NationalID < out[j].NationalID
	})
	return out, nil
}

func (s *InMemoryResidentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.residents), nil
}
