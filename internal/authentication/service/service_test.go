package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"civreg/internal/authentication/metrics"
	"civreg/internal/authentication/models"
	"civreg/internal/authentication/service/mocks"
	"civreg/internal/authentication/store"
	registrymodels "civreg/internal/registry/models"
	registrystore "civreg/internal/registry/store"
	"civreg/pkg/domain"
	"civreg/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

type AuthenticationServiceSuite struct {
	suite.Suite
	ctx      context.Context
	now      time.Time
	attempts *store.InMemoryAttemptStore
	metrics  *metrics.Metrics
	service  *Service
}

func TestAuthenticationServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthenticationServiceSuite))
}

func noWait() backoff.BackOff {
	return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, auditAppendAttempts-1)
}

func (s *AuthenticationServiceSuite) SetupTest() {
	s.now = time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)

	residents := registrystore.NewInMemoryResidentStore()
	s.Require().NoError(residents.Create(context.Background(), &registrymodels.Resident{
		NationalID:     "111122223333",
		FullName:       "Asha Rao",
		DateOfBirth:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:         domain.GenderFemale,
		CurrentAddress: "12 MG Road",
		BiometricToken: "BIO-001",
		PhoneNumber:    "9000000001",
		EmailAddress:   "a@x.com",
		EnrollmentDate: s.now,
	}))

	s.attempts = store.NewInMemoryAttemptStore()
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.service = New(store.NewInMemoryCredentialStore(residents), s.attempts,
		WithMetrics(s.metrics),
		WithAppendBackOff(noWait),
	)
}

func (s *AuthenticationServiceSuite) loggedAttempts() []*models.Attempt {
	all, err := s.attempts.ListAll(context.Background())
	s.Require().NoError(err)
	return all
}

func (s *AuthenticationServiceSuite) TestAuthenticate() {
	s.Run("matching token discloses ekyc details", func() {
		s.SetupTest()
		res := s.service.Authenticate(s.ctx, "111122223333", "BIO-001")

		s.True(res.Success)
		s.Require().NotNil(res.Details)
		s.Equal(models.EKYCDetails{
			FullName:       "Asha Rao",
			DateOfBirth:    time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			Gender:         domain.GenderFemale,
			CurrentAddress: "12 MG Road",
		}, *res.Details)

		logged := s.loggedAttempts()
		s.Require().Len(logged, 1)
		s.True(logged[0].Successful)
		s.Nil(logged[0].FailureReason)
		s.Equal(s.now, logged[0].AttemptedAt)
	})

	s.Run("wrong token is a biometric mismatch", func() {
		s.SetupTest()
		res := s.service.Authenticate(s.ctx, "111122223333", "WRONG")

		s.False(res.Success)
		s.Nil(res.Details)
		logged := s.loggedAttempts()
		s.Require().Len(logged, 1)
		s.False(logged[0].Successful)
		s.Require().NotNil(logged[0].FailureReason)
		s.Equal(models.ReasonBiometricMismatch, *logged[0].FailureReason)
	})

	s.Run("unknown identifier is logged as not found", func() {
		s.SetupTest()
		res := s.service.Authenticate(s.ctx, "000000000000", "X")

		s.False(res.Success)
		s.Nil(res.Details)
		logged := s.loggedAttempts()
		s.Require().Len(logged, 1)
		s.Equal("000000000000", logged[0].NationalID)
		s.Require().NotNil(logged[0].FailureReason)
		s.Equal(models.ReasonIdentifierNotFound, *logged[0].FailureReason)
	})

	s.Run("malformed identifier is recorded as submitted", func() {
		s.SetupTest()
		res := s.service.Authenticate(s.ctx, "abc", "X")

		s.False(res.Success)
		logged := s.loggedAttempts()
		s.Require().Len(logged, 1)
		s.Equal("abc", logged[0].NationalID)
	})

	s.Run("one row per call", func() {
		s.SetupTest()
		s.service.Authenticate(s.ctx, "111122223333", "BIO-001")
		s.service.Authenticate(s.ctx, "111122223333", "WRONG")
		s.service.Authenticate(s.ctx, "000000000000", "X")

		s.Len(s.loggedAttempts(), 3)
		s.Equal(1.0, testutil.ToFloat64(s.metrics.DecisionsTotal.WithLabelValues("success")))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.DecisionsTotal.WithLabelValues("biometric_mismatch")))
		s.Equal(1.0, testutil.ToFloat64(s.metrics.DecisionsTotal.WithLabelValues("identifier_not_found")))
	})

	s.Run("requester ip is recorded when known", func() {
		s.SetupTest()
		ctx := requestcontext.WithClientMetadata(s.ctx, "203.0.113.7", "curl/8.0")
		s.service.Authenticate(ctx, "111122223333", "BIO-001")

		logged := s.loggedAttempts()
		s.Require().Len(logged, 1)
		s.Require().NotNil(logged[0].RequesterIP)
		s.Equal("203.0.113.7", *logged[0].RequesterIP)
	})

	s.Run("requester ip is null when unknown", func() {
		s.SetupTest()
		s.service.Authenticate(s.ctx, "111122223333", "BIO-001")
		s.Nil(s.loggedAttempts()[0].RequesterIP)
	})
}

func (s *AuthenticationServiceSuite) TestStoreFailures() {
	s.Run("lookup error reports failure and logs nothing", func() {
		ctrl := gomock.NewController(s.T())
		credentials := mocks.NewMockCredentialLookup(ctrl)
		attempts := mocks.NewMockAttemptStore(ctrl)
		credentials.EXPECT().FindCredential(gomock.Any(), "111122223333").Return(nil, errors.New("connection refused"))

		svc := New(credentials, attempts, WithAppendBackOff(noWait))
		res := svc.Authenticate(s.ctx, "111122223333", "BIO-001")

		s.False(res.Success)
		s.Nil(res.Details)
	})

	s.Run("append is retried until it succeeds", func() {
		ctrl := gomock.NewController(s.T())
		credentials := mocks.NewMockCredentialLookup(ctrl)
		attempts := mocks.NewMockAttemptStore(ctrl)
		credentials.EXPECT().FindCredential(gomock.Any(), "111122223333").Return(&models.Credential{
			NationalID:     "111122223333",
			FullName:       "Asha Rao",
			BiometricToken: "BIO-001",
		}, nil)
		gomock.InOrder(
			attempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected")),
			attempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil),
		)
		m := metrics.NewWithRegisterer(prometheus.NewRegistry())

		svc := New(credentials, attempts, WithAppendBackOff(noWait), WithMetrics(m))
		res := svc.Authenticate(s.ctx, "111122223333", "BIO-001")

		s.True(res.Success)
		s.Equal("Asha Rao", res.Details.FullName)
		s.Equal(1.0, testutil.ToFloat64(m.AuditAppendRetries))
	})

	s.Run("decision is withheld when the audit record cannot be written", func() {
		ctrl := gomock.NewController(s.T())
		credentials := mocks.NewMockCredentialLookup(ctrl)
		attempts := mocks.NewMockAttemptStore(ctrl)
		credentials.EXPECT().FindCredential(gomock.Any(), gomock.Any()).Return(&models.Credential{
			NationalID:     "111122223333",
			BiometricToken: "BIO-001",
		}, nil)
		attempts.EXPECT().Append(gomock.Any(), gomock.Any()).Return(errors.New("disk full")).Times(auditAppendAttempts)
		m := metrics.NewWithRegisterer(prometheus.NewRegistry())

		svc := New(credentials, attempts, WithAppendBackOff(noWait), WithMetrics(m))
		res := svc.Authenticate(s.ctx, "111122223333", "BIO-001")

		s.False(res.Success)
		s.Nil(res.Details)
		s.Equal(1.0, testutil.ToFloat64(m.AuditAppendFailures))
	})
}

// lostReplyStore commits the first append and then reports an error, as when
// the connection drops after the database acknowledged the insert.
type lostReplyStore struct {
	*store.InMemoryAttemptStore
	dropped bool
}

func (l *lostReplyStore) Append(ctx context.Context, a *models.Attempt) error {
	if err := l.InMemoryAttemptStore.Append(ctx, a); err != nil {
		return err
	}
	if !l.dropped {
		l.dropped = true
		return errors.New("connection reset by peer")
	}
	return nil
}

func (s *AuthenticationServiceSuite) TestRetriedAppendKeepsOneRow() {
	residents := registrystore.NewInMemoryResidentStore()
	s.Require().NoError(residents.Create(s.ctx, &registrymodels.Resident{
		NationalID:     "111122223333",
		FullName:       "Asha Rao",
		BiometricToken: "BIO-001",
	}))
	attempts := &lostReplyStore{InMemoryAttemptStore: store.NewInMemoryAttemptStore()}

	svc := New(store.NewInMemoryCredentialStore(residents), attempts, WithAppendBackOff(noWait))
	res := svc.Authenticate(s.ctx, "111122223333", "BIO-001")

	s.True(res.Success)
	logged, err := attempts.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(logged, 1)
}

func TestLinearBackOff(t *testing.T) {
	b := &linearBackOff{step: 10 * time.Millisecond}
	if got := b.NextBackOff(); got != 10*time.Millisecond {
		t.Fatalf("first wait = %v", got)
	}
	if got := b.NextBackOff(); got != 20*time.Millisecond {
		t.Fatalf("second wait = %v", got)
	}
	b.Reset()
	if got := b.NextBackOff(); got != 10*time.Millisecond {
		t.Fatalf("wait after reset = %v", got)
	}

	limited := defaultAppendBackOff()
	for i := 0; i < auditAppendAttempts-1; i++ {
		if limited.NextBackOff() == backoff.Stop {
			t.Fatalf("stopped after %d retries", i)
		}
	}
	if limited.NextBackOff() != backoff.Stop {
		t.Fatal("expected stop after the final retry")
	}
}
