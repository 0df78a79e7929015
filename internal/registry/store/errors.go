package store

import (
	"fmt"

	"civreg/pkg/platform/sentinel"
)

// Both wrap sentinel.ErrConflict so callers can match either the specific
// collision or the generic class.
var (
	ErrBiometricInUse  = fmt.Errorf("biometric token already enrolled: %w", sentinel.ErrConflict)
	ErrNationalIDInUse = fmt.Errorf("national identifier already enrolled: %w", sentinel.ErrConflict)
)
