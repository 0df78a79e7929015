package models

import (
	"math"
	"time"
)

// HighFailureRatio is the failed/successful ratio above which insights raise
// an alert.
const HighFailureRatio = 0.1

// Counts is one consistent read of the registry tables.
type Counts struct {
	TotalEnrollments       int64 `db:"total_enrollments"`
	SuccessfulAuth         int64 `db:"successful_auth"`
	FailedAuth             int64 `db:"failed_auth"`
	DeduplicationConflicts int64 `db:"deduplication_conflicts"`
}

// Insights are the derived usage metrics shown to administrators.
type Insights struct {
	TotalEnrollments       int64     `json:"total_enrollments"`
	SuccessfulAuth         int64     `json:"successful_auth"`
	FailedAuth             int64     `json:"failed_auth"`
	TotalAuthAttempts      int64     `json:"total_auth_attempts"`
	SuccessRate            float64   `json:"success_rate"`
	DeduplicationConflicts int64     `json:"deduplication_conflicts"`
	HighFailureAlert       bool      `json:"high_failure_alert"`
	ComputedAt             time.Time `json:"computed_at"`
}

// NewInsights derives totals and rates from c. TotalAuthAttempts is always
// SuccessfulAuth + FailedAuth and SuccessRate is 0 when there are no attempts.
func NewInsights(c Counts, now time.Time) *Insights {
	total := c.SuccessfulAuth + c.FailedAuth
	var rate float64
	if total > 0 {
		rate = round2(float64(c.SuccessfulAuth) / float64(total) * 100)
	}
	return &Insights{
		TotalEnrollments:       c.TotalEnrollments,
		SuccessfulAuth:         c.SuccessfulAuth,
		FailedAuth:             c.FailedAuth,
		TotalAuthAttempts:      total,
		SuccessRate:            rate,
		DeduplicationConflicts: c.DeduplicationConflicts,
		HighFailureAlert:       float64(c.FailedAuth) > HighFailureRatio*float64(c.SuccessfulAuth),
		ComputedAt:             now,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
