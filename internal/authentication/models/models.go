package models

import (
	"time"

	"github.com/google/uuid"

	"civreg/pkg/domain"
)

// FailureReason explains why an authentication attempt failed.
type FailureReason string

const (
	ReasonIdentifierNotFound FailureReason = "identifier not found"
	ReasonBiometricMismatch  FailureReason = "biometric mismatch"
)

// Attempt is one row of the authentication audit log. Attempts are
// append-only and reference the claimed identifier as submitted, which may
// not belong to any resident. Key identifies the attempt across append
// retries so a resent insert never adds a second row.
type Attempt struct {
	ID            int64          `json:"id" db:"id"`
	Key           uuid.UUID      `json:"-" db:"attempt_key"`
	NationalID    string         `json:"national_id" db:"national_id"`
	AttemptedAt   time.Time      `json:"attempted_at" db:"attempted_at"`
	Successful    bool           `json:"is_successful" db:"is_successful"`
	FailureReason *FailureReason `json:"failure_reason" db:"failure_reason"`
	RequesterIP   *string        `json:"requester_ip" db:"requester_ip"`
}

// NewAttempt starts an attempt record; exactly one of Succeed or Fail
// completes it.
func NewAttempt(claimedID string, now time.Time, requesterIP string) *Attempt {
	a := &Attempt{Key: uuid.New(), NationalID: claimedID, AttemptedAt: now}
	if requesterIP != "" {
		a.RequesterIP = &requesterIP
	}
	return a
}

func (a *Attempt) Succeed() {
	a.Successful = true
	a.FailureReason = nil
}

func (a *Attempt) Fail(reason FailureReason) {
	a.Successful = false
	a.FailureReason = &reason
}

// EKYCDetails is the minimal disclosure returned on success. It never
// carries the biometric token or contact fields.
type EKYCDetails struct {
	FullName       string        `json:"full_name"`
	DateOfBirth    time.Time     `json:"date_of_birth"`
	Gender         domain.Gender `json:"gender"`
	CurrentAddress string        `json:"current_address"`
}

// Credential is what the authentication path reads about a resident in a
// single lookup.
type Credential struct {
	NationalID     domain.NationalID `db:"national_id"`
	FullName       string            `db:"full_name"`
	DateOfBirth    time.Time         `db:"date_of_birth"`
	Gender         domain.Gender     `db:"gender"`
	CurrentAddress string            `db:"current_address"`
	BiometricToken string            `db:"biometric_token"`
}

func (c *Credential) EKYC() *EKYCDetails {
	return &EKYCDetails{
		FullName:       c.FullName,
		DateOfBirth:    c.DateOfBirth,
		Gender:         c.Gender,
		CurrentAddress: c.CurrentAddress,
	}
}

// Result is the authentication decision. Details is nil unless Success.
type Result struct {
	Success bool
	Details *EKYCDetails
}

func Failure() *Result {
	return &Result{}
}
