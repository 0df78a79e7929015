package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civreg/internal/authentication/models"
	registrymodels "civreg/internal/registry/models"
	registrystore "civreg/internal/registry/store"
)

func TestInMemoryCredentialStore(t *testing.T) {
	ctx := context.Background()
	residents := registrystore.NewInMemoryResidentStore()
	require.NoError(t, residents.Create(ctx, &registrymodels.Resident{
		NationalID:     "111122223333",
		FullName:       "Asha Rao",
		Gender:         "Female",
		BiometricToken: "BIO-001",
	}))
	s := NewInMemoryCredentialStore(residents)

	c, err := s.FindCredential(ctx, "111122223333")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "BIO-001", c.BiometricToken)

	missing, err := s.FindCredential(ctx, "not-an-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInMemoryAttemptStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryAttemptStore()
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

	ok := models.NewAttempt("111122223333", base, "")
	ok.Succeed()
	bad := models.NewAttempt("111122223333", base.Add(time.Second), "")
	bad.Fail(models.ReasonBiometricMismatch)
	require.NoError(t, s.Append(ctx, ok))
	require.NoError(t, s.Append(ctx, bad))

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.False(t, all[0].Successful, "newest first")

	succ, fail, err := s.CountByOutcome(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, succ)
	assert.Equal(t, 1, fail)

	t.Run("repeated append keeps one row", func(t *testing.T) {
		again := *bad
		again.ID = 0
		require.NoError(t, s.Append(ctx, &again))
		assert.Equal(t, bad.ID, again.ID)

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}
