package bucket

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"civreg/internal/ratelimit/models"
)

// InMemoryBucketStore is a fixed-window counter kept in process. Windows
// expire with their cache entry.
type InMemoryBucketStore struct {
	mu    sync.Mutex
	cache *cache.Cache
	now   func() time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

func NewInMemoryBucketStore() *InMemoryBucketStore {
	return &InMemoryBucketStore{
		cache: cache.New(cache.NoExpiration, time.Minute),
		now:   time.Now,
	}
}

// Allow counts one request against key and reports whether it fits in limit.
func (s *InMemoryBucketStore) Allow(_ context.Context, key string, limit int, period time.Duration) (*models.RateLimitResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	w := window{resetAt: now.Add(period)}
	if v, ok := s.cache.Get(key); ok {
		if cur := v.(window); now.Before(cur.resetAt) {
			w = cur
		}
	}
	w.count++
	s.cache.Set(key, w, w.resetAt.Sub(now))
	return models.NewRateLimitResult(w.count, limit, w.resetAt, now), nil
}

// Reset clears the counter for key.
func (s *InMemoryBucketStore) Reset(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
