// internal/matchmaker/feed_cache.go
package matchmaker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// FeedCache is a read-through cache for the matched feeds. The feeds are
// recomputed from full table scans on every request, so even a short TTL
// takes most of the load off Postgres.
type FeedCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewFeedCache(rdb *redis.Client, ttl time.Duration) *FeedCache {
	return &FeedCache{redis: rdb, ttl: ttl}
}

// Get unmarshals a cached feed into dest. Returns false on miss or on a
// decode failure; a stale or corrupt entry just forces a recompute.
func (c *FeedCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.redis == nil {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

// Set stores a computed feed. Cache errors are ignored; the feed was already
// served from the live computation.
func (c *FeedCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.redis.Set(ctx, key, data, c.ttl)
}
