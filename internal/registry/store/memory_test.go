package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civreg/internal/registry/models"
	"civreg/pkg/domain"
	"civreg/pkg/platform/sentinel"
)

func newResident(id domain.NationalID, token string, enrolled time.Time) *models.Resident {
	return &models.Resident{
		NationalID:     id,
		FullName:       "Test Resident",
		DateOfBirth:    time.Date(1985, 6, 1, 0, 0, 0, 0, time.UTC),
		Gender:         domain.GenderOther,
		BiometricToken: token,
		EnrollmentDate: enrolled,
	}
}

func TestInMemoryResidentStore(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("unique keys", func(t *testing.T) {
		s := NewInMemoryResidentStore()
		require.NoError(t, s.Create(ctx, newResident("111111111111", "T1", day)))

		err := s.Create(ctx, newResident("111111111111", "T2", day))
		assert.ErrorIs(t, err, ErrNationalIDInUse)
		assert.ErrorIs(t, err, sentinel.ErrConflict)

		err = s.Create(ctx, newResident("222222222222", "T1", day))
		assert.ErrorIs(t, err, ErrBiometricInUse)
		assert.False(t, errors.Is(err, ErrNationalIDInUse))
	})

	t.Run("count by biometric token", func(t *testing.T) {
		s := NewInMemoryResidentStore()
		require.NoError(t, s.Create(ctx, newResident("111111111111", "T1", day)))
		n, err := s.CountByBiometricToken(ctx, "T1")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		n, _ = s.CountByBiometricToken(ctx, "nope")
		assert.Zero(t, n)
	})

	t.Run("update and delete report rows affected", func(t *testing.T) {
		s := NewInMemoryResidentStore()
		require.NoError(t, s.Create(ctx, newResident("111111111111", "T1", day)))

		rows, err := s.UpdateContact(ctx, models.UpdateCommand{NationalID: "111111111111", CurrentAddress: "new"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, rows)
		r, _ := s.FindByNationalID(ctx, "111111111111")
		assert.Equal(t, "new", r.CurrentAddress)

		rows, _ = s.UpdateContact(ctx, models.UpdateCommand{NationalID: "999999999999"})
		assert.Zero(t, rows)

		rows, _ = s.Delete(ctx, "111111111111")
		assert.EqualValues(t, 1, rows)
		rows, _ = s.Delete(ctx, "111111111111")
		assert.Zero(t, rows)

		n, _ := s.CountByBiometricToken(ctx, "T1")
		assert.Zero(t, n, "token index cleared on delete")
	})

	t.Run("list orders by enrollment date desc then id", func(t *testing.T) {
		s := NewInMemoryResidentStore()
		require.NoError(t, s.Create(ctx, newResident("333333333333", "T3", day.AddDate(0, 0, -1))))
		require.NoError(t, s.Create(ctx, newResident("222222222222", "T2", day)))
		require.NoError(t, s.Create(ctx, newResident("111111111111", "T1", day)))

		all, err := s.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, domain.NationalID("111111111111"), all[0].NationalID)
		assert.Equal(t, domain.NationalID("222222222222"), all[1].NationalID)
		assert.Equal(t, domain.NationalID("333333333333"), all[2].NationalID)
	})
}

func TestInMemoryConflictStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryConflictStore()
	base := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)

	first := models.NewConflict("T1", "111111111111", base)
	second := models.NewConflict("T1", "222222222222", base.Add(time.Minute))
	require.NoError(t, s.Append(ctx, first))
	require.NoError(t, s.Append(ctx, second))
	assert.EqualValues(t, 1, first.ID)
	assert.EqualValues(t, 2, second.ID)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.NationalID("222222222222"), all[0].AttemptedNationalID)
	assert.Equal(t, models.ConflictStatusPending, all[1].Status)
}
