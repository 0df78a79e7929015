package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authmodels "civreg/internal/authentication/models"
	authstore "civreg/internal/authentication/store"
	registrymodels "civreg/internal/registry/models"
	registrystore "civreg/internal/registry/store"
)

func TestInMemoryStoreCounts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)

	residents := registrystore.NewInMemoryResidentStore()
	attempts := authstore.NewInMemoryAttemptStore()
	conflicts := registrystore.NewInMemoryConflictStore()
	s := NewInMemoryStore(residents, attempts, conflicts)

	empty, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Zero(t, *empty)

	require.NoError(t, residents.Create(ctx, &registrymodels.Resident{NationalID: "111122223333", BiometricToken: "BIO-001"}))
	require.NoError(t, conflicts.Append(ctx, registrymodels.NewConflict("BIO-001", "444455556666", now)))
	ok := authmodels.NewAttempt("111122223333", now, "")
	ok.Succeed()
	bad := authmodels.NewAttempt("000000000000", now.Add(time.Minute), "")
	bad.Fail(authmodels.ReasonIdentifierNotFound)
	require.NoError(t, attempts.Append(ctx, ok))
	require.NoError(t, attempts.Append(ctx, bad))

	c, err := s.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.TotalEnrollments)
	assert.Equal(t, int64(1), c.SuccessfulAuth)
	assert.Equal(t, int64(1), c.FailedAuth)
	assert.Equal(t, int64(1), c.DeduplicationConflicts)

	log, err := s.ListAuthLog(ctx)
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, "000000000000", log[0].NationalID)
}
