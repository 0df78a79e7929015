package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRateLimitResult(t *testing.T) {
	now := time.Date(2026, 5, 2, 9, 30, 0, 0, time.UTC)
	reset := now.Add(42 * time.Second)

	t.Run("within limit", func(t *testing.T) {
		r := NewRateLimitResult(3, 5, reset, now)
		assert.True(t, r.Allowed)
		assert.Equal(t, 2, r.Remaining)
		assert.Zero(t, r.RetryAfter)
	})

	t.Run("last allowed request", func(t *testing.T) {
		r := NewRateLimitResult(5, 5, reset, now)
		assert.True(t, r.Allowed)
		assert.Zero(t, r.Remaining)
	})

	t.Run("over limit sets retry after", func(t *testing.T) {
		r := NewRateLimitResult(6, 5, reset, now)
		assert.False(t, r.Allowed)
		assert.Zero(t, r.Remaining)
		assert.Equal(t, 42, r.RetryAfter)
	})

	t.Run("retry after is at least one second", func(t *testing.T) {
		r := NewRateLimitResult(6, 5, now, now)
		assert.Equal(t, 1, r.RetryAfter)
	})
}

func TestNewIPKey(t *testing.T) {
	assert.Equal(t, "civreg:ratelimit:authenticate:ip:203.0.113.7", NewIPKey("authenticate", "203.0.113.7"))
	assert.Equal(t, "civreg:ratelimit:authenticate:ip:__1", NewIPKey("authenticate", "::1"),
		"colons in IPv6 addresses must not create new key segments")
}
