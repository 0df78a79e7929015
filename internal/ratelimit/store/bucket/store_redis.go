package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"civreg/internal/ratelimit/models"
	"civreg/pkg/platform/sentinel"
)

// RedisBucketStore is a fixed-window counter shared by every instance that
// points at the same Redis.
type RedisBucketStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client, now: time.Now}
}

// Allow increments key and sets its expiry on the first hit of a window. The
// increment, expiry and TTL read run in one MULTI so the window cannot be
// left without an expiry.
func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, period time.Duration) (*models.RateLimitResult, error) {
	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.ExpireNX(ctx, key, period)
		ttl = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis rate limit: %w: %w", sentinel.ErrUnavailable, err)
	}

	now := s.now()
	remaining := ttl.Val()
	if remaining <= 0 {
		remaining = period
	}
	return models.NewRateLimitResult(int(incr.Val()), limit, now.Add(remaining), now), nil
}

func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}
