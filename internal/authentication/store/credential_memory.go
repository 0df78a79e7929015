package store

import (
	"context"

	"civreg/internal/authentication/models"
	registrymodels "civreg/internal/registry/models"
	"civreg/pkg/domain"
)

// ResidentFinder is the read side of the registry's resident store.
type ResidentFinder interface {
	FindByNationalID(ctx context.Context, id domain.NationalID) (*registrymodels.Resident, error)
}

// InMemoryCredentialStore projects residents from an in-memory registry.
type InMemoryCredentialStore struct {
	residents ResidentFinder
}

func NewInMemoryCredentialStore(residents ResidentFinder) *InMemoryCredentialStore {
	return &InMemoryCredentialStore{residents: residents}
}

func (s *InMemoryCredentialStore) FindCredential(ctx context.Context, claimedID string) (*models.Credential, error) {
	r, err := s.residents.FindByNationalID(ctx, domain.NationalID(claimedID))
	if err != nil || r == nil {
		return nil, err
	}
	return &models.Credential{
		NationalID:     r.NationalID,
		FullName:       r.FullName,
		DateOfBirth:    r.DateOfBirth,
		Gender:         r.Gender,
		CurrentAddress: r.CurrentAddress,
		BiometricToken: r.BiometricToken,
	}, nil
}
