package middleware

import (
	"context"
	"log/slog"
	"time"

	"civreg/internal/ratelimit/metrics"
	"civreg/internal/ratelimit/models"
	"civreg/pkg/platform/circuit"
)

// BucketStore counts requests in fixed windows.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error)
}

// FallbackLimiter checks the primary store until it fails repeatedly, then
// serves from the in-process fallback until the primary recovers. While open,
// the primary is still probed on every call so recovery is detected.
type FallbackLimiter struct {
	primary  BucketStore
	fallback BucketStore
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewFallbackLimiter(primary, fallback BucketStore, breaker *circuit.Breaker, logger *slog.Logger, m *metrics.Metrics) *FallbackLimiter {
	return &FallbackLimiter{
		primary:  primary,
		fallback: fallback,
		breaker:  breaker,
		logger:   logger,
		metrics:  m,
	}
}

// Degraded reports whether answers currently come from the fallback.
func (f *FallbackLimiter) Degraded() bool {
	return f.breaker.IsOpen()
}

func (f *FallbackLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	result, err := f.primary.Allow(ctx, key, limit, window)
	if err != nil {
		useFallback, change := f.breaker.RecordFailure()
		if change.Opened {
			f.metrics.SetDegraded(true)
			f.logger.WarnContext(ctx, "rate limiter degraded to in-process fallback",
				"breaker", f.breaker.Name(),
				"error", err,
			)
		}
		if !useFallback {
			return nil, err
		}
		return f.fallback.Allow(ctx, key, limit, window)
	}

	usePrimary, change := f.breaker.RecordSuccess()
	if change.Closed {
		f.metrics.SetDegraded(false)
		f.logger.InfoContext(ctx, "rate limiter recovered", "breaker", f.breaker.Name())
	}
	if !usePrimary {
		return f.fallback.Allow(ctx, key, limit, window)
	}
	return result, nil
}
