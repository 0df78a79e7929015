package models

import "time"

// RateLimitResult is the outcome of one fixed-window check.
type RateLimitResult struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// NewRateLimitResult derives the result for a window that has seen count
// requests, including this one, and resets at resetAt.
func NewRateLimitResult(count, limit int, resetAt, now time.Time) *RateLimitResult {
	r := &RateLimitResult{
		Allowed: count <= limit,
		Limit:   limit,
		ResetAt: resetAt,
	}
	if r.Allowed {
		r.Remaining = limit - count
		return r
	}
	retry := int(resetAt.Sub(now).Round(time.Second) / time.Second)
	if retry < 1 {
		retry = 1
	}
	r.RetryAfter = retry
	return r
}

// RateLimitExceededResponse is the API response when a limit is exceeded.
type RateLimitExceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"` // seconds
}
