package domain

import (
	dErrors "civreg/pkg/domain-errors"
)

// NationalIDLength is the fixed length of a national identifier.
const NationalIDLength = 12

// NationalID is the enrollment number that keys a resident.
// Invariant: exactly NationalIDLength ASCII digits.
//
// Usage: construct via ParseNationalID at trust boundaries; direct casting
// bypasses validation and is reserved for values read back from the store.
type NationalID string

// ParseNationalID validates external input.
//
// Errors: returns CodeInvalidInput when the value is empty, has the wrong length,
// or contains anything other than ASCII digits.
func ParseNationalID(s string) (NationalID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "national identifier is required")
	}
	if len(s) != NationalIDLength {
		return "", dErrors.New(dErrors.CodeInvalidInput, "national identifier must be 12 digits")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", dErrors.New(dErrors.CodeInvalidInput, "national identifier must be 12 digits")
		}
	}
	return NationalID(s), nil
}

func (n NationalID) String() string {
	return string(n)
}

// IsNil returns true if the identifier is empty.
func (n NationalID) IsNil() bool {
	return n == ""
}

// Masked returns the identifier with all but the last four digits hidden,
// for logs.
func (n NationalID) Masked() string {
	return MaskIdentifier(string(n))
}

// MaskIdentifier hides all but the last four characters of an arbitrary
// claimed identifier. Safe on malformed input.
func MaskIdentifier(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	masked := make([]byte, len(s))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(s)-4:], s[len(s)-4:])
	return string(masked)
}
