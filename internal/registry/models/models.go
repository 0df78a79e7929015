package models

import (
	"time"

	"civreg/pkg/domain"
	dErrors "civreg/pkg/domain-errors"
)

// Field limits mirror the column widths of the residents table.
const (
	MaxFullNameLength       = 100
	MaxBiometricTokenLength = 50
	MaxPhoneLength          = 15
	MaxEmailLength          = 100
)

// Resident is an enrolled citizen.
//
// Invariants:
//   - NationalID, FullName, DateOfBirth, Gender, BiometricToken and
//     EnrollmentDate are immutable after creation
//   - EnrollmentDate is set by the registry, never by the caller
//   - at most one Resident per NationalID and per BiometricToken
type Resident struct {
	NationalID     domain.NationalID `json:"national_id" db:"national_id"`
	FullName       string            `json:"full_name" db:"full_name"`
	DateOfBirth    time.Time         `json:"date_of_birth" db:"date_of_birth"`
	Gender         domain.Gender     `json:"gender" db:"gender"`
	CurrentAddress string            `json:"current_address" db:"current_address"`
	BiometricToken string            `json:"biometric_token" db:"biometric_token"`
	PhoneNumber    string            `json:"phone_number" db:"phone_number"`
	EmailAddress   string            `json:"email_address" db:"email_address"`
	EnrollmentDate time.Time         `json:"enrollment_date" db:"enrollment_date"`
}

// NewResident builds a Resident from a validated command, stamping the
// enrollment date from now.
func NewResident(cmd EnrollCommand, now time.Time) (*Resident, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return &Resident{
		NationalID:     cmd.NationalID,
		FullName:       cmd.FullName,
		DateOfBirth:    DateOf(cmd.DateOfBirth),
		Gender:         cmd.Gender,
		CurrentAddress: cmd.CurrentAddress,
		BiometricToken: cmd.BiometricToken,
		PhoneNumber:    cmd.PhoneNumber,
		EmailAddress:   cmd.EmailAddress,
		EnrollmentDate: DateOf(now),
	}, nil
}

// DateOf truncates t to its calendar date, expressed in UTC to match a SQL DATE.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ConflictStatus is the resolution state of a deduplication conflict.
// No workflow moves a conflict out of pending.
type ConflictStatus string

const ConflictStatusPending ConflictStatus = "pending"

// Conflict records an enrollment rejected because its biometric token was
// already held by another resident. Append-only.
type Conflict struct {
	ID                  int64             `json:"id" db:"id"`
	BiometricToken      string            `json:"biometric_token" db:"biometric_token"`
	AttemptedNationalID domain.NationalID `json:"attempted_national_id" db:"attempted_national_id"`
	ConflictAt          time.Time         `json:"conflict_at" db:"conflict_at"`
	Status              ConflictStatus    `json:"status" db:"status"`
}

// NewConflict builds a pending conflict for the attempted enrollment.
func NewConflict(token string, attempted domain.NationalID, now time.Time) *Conflict {
	return &Conflict{
		BiometricToken:      token,
		AttemptedNationalID: attempted,
		ConflictAt:          now,
		Status:              ConflictStatusPending,
	}
}

// EnrollCommand carries an enrollment request whose identifier and gender
// were already parsed at the boundary.
type EnrollCommand struct {
	NationalID     domain.NationalID
	FullName       string
	DateOfBirth    time.Time
	Gender         domain.Gender
	CurrentAddress string
	BiometricToken string
	PhoneNumber    string
	EmailAddress   string
}

// Validate checks the fields the typed constructors cannot.
func (c EnrollCommand) Validate() error {
	if c.NationalID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "national identifier is required")
	}
	if c.FullName == "" {
		return dErrors.New(dErrors.CodeValidation, "full name is required")
	}
	if len(c.FullName) > MaxFullNameLength {
		return dErrors.New(dErrors.CodeValidation, "full name must be 100 characters or less")
	}
	if c.DateOfBirth.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "date of birth is required")
	}
	if !c.Gender.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "gender must be one of Male, Female, Other")
	}
	if c.BiometricToken == "" {
		return dErrors.New(dErrors.CodeValidation, "biometric token is required")
	}
	if len(c.BiometricToken) > MaxBiometricTokenLength {
		return dErrors.New(dErrors.CodeValidation, "biometric token must be 50 characters or less")
	}
	return validateContact(c.PhoneNumber, c.EmailAddress)
}

// UpdateCommand carries the mutable contact fields of a resident.
type UpdateCommand struct {
	NationalID     domain.NationalID
	CurrentAddress string
	PhoneNumber    string
	EmailAddress   string
}

func (c UpdateCommand) Validate() error {
	if c.NationalID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "national identifier is required")
	}
	return validateContact(c.PhoneNumber, c.EmailAddress)
}

func validateContact(phone, email string) error {
	if len(phone) > MaxPhoneLength {
		return dErrors.New(dErrors.CodeValidation, "phone number must be 15 characters or less")
	}
	if len(email) > MaxEmailLength {
		return dErrors.New(dErrors.CodeValidation, "email address must be 100 characters or less")
	}
	return nil
}
