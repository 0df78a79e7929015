package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"civreg/internal/platform/postgres"
	"civreg/internal/registry/models"
	"civreg/pkg/domain"
)

const (
	residentsPKey          = "residents_pkey"
	residentsBiometricUniq = "residents_biometric_token_key"
)

const residentColumns = `national_id, full_name, date_of_birth, gender, current_address,
	biometric_token, phone_number, email_address, enrollment_date`

// PostgresResidentStore persists residents. Every method joins the transaction
// carried by ctx when there is one.
type PostgresResidentStore struct {
	db *sqlx.DB
}

func NewPostgresResidentStore(db *sqlx.DB) *PostgresResidentStore {
	return &PostgresResidentStore{db: db}
}

func (s *PostgresResidentStore) execer(ctx context.Context) postgres.Execer {
	return postgres.ExecerFrom(ctx, s.db)
}

func (s *PostgresResidentStore) CountByBiometricToken(ctx context.Context, token string) (int, error) {
	var n int
	err := s.execer(ctx).GetContext(ctx, &n, `SELECT COUNT(*) FROM residents WHERE biometric_token = $1`, token)
	if err != nil {
		return 0, fmt.Errorf("count residents by biometric token: %w", err)
	}
	return n, nil
}

func (s *PostgresResidentStore) Create(ctx context.Context, r *models.Resident) error {
	query := `INSERT INTO residents (` + residentColumns + `)
		VALUES (:national_id, :full_name, :date_of_birth, :gender, :current_address,
			:biometric_token, :phone_number, :email_address, :enrollment_date)`
	_, err := sqlx.NamedExecContext(ctx, s.execer(ctx), query, r)
	if err != nil {
		if constraint, ok := postgres.UniqueViolation(err); ok {
			switch constraint {
			case residentsBiometricUniq:
				return ErrBiometricInUse
			case residentsPKey:
				return ErrNationalIDInUse
			}
		}
		return fmt.Errorf("insert resident: %w", err)
	}
	return nil
}

// FindByNationalID returns nil, nil when no resident matches.
func (s *PostgresResidentStore) FindByNationalID(ctx context.Context, id domain.NationalID) (*models.Resident, error) {
	var r models.Resident
	err := s.execer(ctx).GetContext(ctx, &r,
		`SELECT `+residentColumns+` FROM residents WHERE national_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find resident: %w", err)
	}
	return &r, nil
}

func (s *PostgresResidentStore) UpdateContact(ctx context.Context, cmd models.UpdateCommand) (int64, error) {
	res, err := s.execer(ctx).ExecContext(ctx, `
		UPDATE residents
		SET current_address = $1, phone_number = $2, email_address = $3
		WHERE national_id = $4`,
		cmd.CurrentAddress, cmd.PhoneNumber, cmd.EmailAddress, cmd.NationalID)
	if err != nil {
		return 0, fmt.Errorf("update resident: %w", err)
	}
	return res.RowsAffected()
}

func (s *PostgresResidentStore) Delete(ctx context.Context, id domain.NationalID) (int64, error) {
	res, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM residents WHERE national_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete resident: %w", err)
	}
	return res.RowsAffected()
}

func (s *PostgresResidentStore) ListAll(ctx context.Context) ([]*models.Resident, error) {
	var out []*models.Resident
	err := s.execer(ctx).SelectContext(ctx, &out,
		`SELECT `+residentColumns+` FROM residents ORDER BY enrollment_date DESC, national_id`)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	if out == nil {
		out = []*models.Resident{}
	}
	return out, nil
}
