//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"civreg/internal/authentication/models"
	"civreg/internal/authentication/store"
	registrymodels "civreg/internal/registry/models"
	registrystore "civreg/internal/registry/store"
	"civreg/pkg/domain"
	"civreg/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres    *containers.PostgresContainer
	credentials *store.PostgresCredentialStore
	attempts    *store.PostgresAttemptStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.credentials = store.NewPostgresCredentialStore(s.postgres.DB)
	s.attempts = store.NewPostgresAttemptStore(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "residents", "authentication_log"))
}

func (s *PostgresStoreSuite) TestFindCredential() {
	ctx := context.Background()
	residents := registrystore.NewPostgresResidentStore(s.postgres.DB)
	s.Require().NoError(residents.Create(ctx, &registrymodels.Resident{
		NationalID:     "111122223333",
		FullName:       "Asha Rao",
		DateOfBirth:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:         domain.GenderFemale,
		CurrentAddress: "12 MG Road",
		BiometricToken: "BIO-001",
		EnrollmentDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	c, err := s.credentials.FindCredential(ctx, "111122223333")
	s.Require().NoError(err)
	s.Require().NotNil(c)
	s.Equal("BIO-001", c.BiometricToken)
	s.Equal("12 MG Road", c.CurrentAddress)

	missing, err := s.credentials.FindCredential(ctx, "000000000000")
	s.Require().NoError(err)
	s.Nil(missing)
}

func (s *PostgresStoreSuite) TestAppendAttemptKeepsNullables() {
	ctx := context.Background()

	ok := models.NewAttempt("111122223333", time.Now(), "")
	ok.Succeed()
	s.Require().NoError(s.attempts.Append(ctx, ok))
	s.Positive(ok.ID)

	bad := models.NewAttempt("000000000000", time.Now(), "198.51.100.4")
	bad.Fail(models.ReasonIdentifierNotFound)
	s.Require().NoError(s.attempts.Append(ctx, bad))

	var rows []models.Attempt
	s.Require().NoError(s.postgres.DB.SelectContext(ctx, &rows,
		`SELECT id, national_id, attempted_at, is_successful, failure_reason, requester_ip FROM authentication_log ORDER BY id`))
	s.Require().Len(rows, 2)
	s.Nil(rows[0].FailureReason)
	s.Nil(rows[0].RequesterIP)
	s.Require().NotNil(rows[1].FailureReason)
	s.Equal(models.ReasonIdentifierNotFound, *rows[1].FailureReason)
	s.Equal("198.51.100.4", *rows[1].RequesterIP)
}

func (s *PostgresStoreSuite) TestAppendAttemptIsIdempotentOnKey() {
	ctx := context.Background()

	a := models.NewAttempt("111122223333", time.Now(), "")
	a.Succeed()
	s.Require().NoError(s.attempts.Append(ctx, a))
	first := a.ID

	resent := *a
	resent.ID = 0
	s.Require().NoError(s.attempts.Append(ctx, &resent))
	s.Equal(first, resent.ID)

	var count int
	s.Require().NoError(s.postgres.DB.GetContext(ctx, &count, `SELECT COUNT(*) FROM authentication_log WHERE attempt_key = $1`, a.Key))
	s.Equal(1, count)
}
