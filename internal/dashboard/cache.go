package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const summaryCacheKey = "dashboard:summary"

// SummaryCache keeps the summary payload in Redis for a short TTL. The
// cache is never invalidated on writes; staleness is bounded by the TTL
// alone. A nil cache is a no-op, so callers can wire it unconditionally.
type SummaryCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewSummaryCache returns a cache, or nil when no Redis client is available.
func NewSummaryCache(redisClient *redis.Client, ttl time.Duration) *SummaryCache {
	if redisClient == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &SummaryCache{redis: redisClient, ttl: ttl}
}

// Get returns the cached summary, or nil on miss or any Redis failure.
// Cache errors are deliberately swallowed; the caller recomputes.
func (c *SummaryCache) Get(ctx context.Context) *Summary {
	if c == nil || c.redis == nil {
		return nil
	}
	data, err := c.redis.Get(ctx, summaryCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

// Set stores the summary for the configured TTL. Failures are ignored.
func (c *SummaryCache) Set(ctx context.Context, s *Summary) {
	if c == nil || c.redis == nil || s == nil {
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, summaryCacheKey, data, c.ttl).Err()
}
