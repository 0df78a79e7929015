package models

import dErrors "civreg/pkg/domain-errors"

// OutcomeStatus classifies the result of a registry mutation.
type OutcomeStatus string

const (
	OutcomeCreated  OutcomeStatus = "created"
	OutcomeConflict OutcomeStatus = "conflict"
	OutcomeUpdated  OutcomeStatus = "updated"
	OutcomeDeleted  OutcomeStatus = "deleted"
	OutcomeError    OutcomeStatus = "error"
)

// Outcome is what registry mutations return in place of an error. Business
// results and store failures both land here so callers branch on Status and
// Code rather than parsing Message.
type Outcome struct {
	Status       OutcomeStatus `json:"status"`
	Message      string        `json:"message"`
	Code         dErrors.Code  `json:"code,omitempty"`
	RowsAffected int64         `json:"rows_affected"`
}

// Matched reports whether an update or delete touched a row.
func (o *Outcome) Matched() bool {
	return o != nil && o.RowsAffected > 0
}

func Created() *Outcome {
	return &Outcome{Status: OutcomeCreated, Message: "Citizen enrolled successfully.", RowsAffected: 1}
}

func ConflictDetected() *Outcome {
	return &Outcome{
		Status:  OutcomeConflict,
		Message: "Biometric ID already exists. Possible duplicate enrollment.",
		Code:    dErrors.CodeConflict,
	}
}

// Updated reports a contact update; rows is zero when nothing matched.
func Updated(rows int64) *Outcome {
	return &Outcome{Status: OutcomeUpdated, Message: "Citizen details updated successfully.", RowsAffected: rows}
}

// Deleted reports a deletion; rows is zero when nothing matched.
func Deleted(rows int64) *Outcome {
	return &Outcome{Status: OutcomeDeleted, Message: "Citizen record deleted successfully.", RowsAffected: rows}
}

// Failed converts err into an error outcome. Internal causes are replaced by a
// generic message so driver text never reaches the caller.
func Failed(err error) *Outcome {
	code := dErrors.CodeOf(err)
	msg := "Error: registry store unavailable"
	if de, ok := dErrors.As(err); ok && code != dErrors.CodeInternal {
		msg = "Error: " + de.Message
	}
	return &Outcome{Status: OutcomeError, Message: msg, Code: code}
}
