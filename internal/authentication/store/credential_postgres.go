package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"civreg/internal/authentication/models"
)

// PostgresCredentialStore reads the authentication view of residents.
type PostgresCredentialStore struct {
	db *sqlx.DB
}

func NewPostgresCredentialStore(db *sqlx.DB) *PostgresCredentialStore {
	return &PostgresCredentialStore{db: db}
}

// FindCredential returns nil, nil when no resident holds claimedID. Token and
// disclosure fields come back in one read so the decision and the eKYC
// payload describe the same row.
func (s *PostgresCredentialStore) FindCredential(ctx context.Context, claimedID string) (*models.Credential, error) {
	var c models.Credential
	err := s.db.GetContext(ctx, &c, `
		SELECT national_id, full_name, date_of_birth, gender, current_address, biometric_token
		FROM residents
		WHERE national_id = $1`, claimedID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return &c, nil
}
