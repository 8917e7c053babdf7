package httpapi

import (
	"context"
	"time"

	"github.com/yourorg/listings-api/internal/redisx"
)

const (
	KindProperty = "property"
	KindProject  = "project"
)

// CacheKey builds the redis key for a listing response envelope.
func CacheKey(kind, id string) string {
	return "listing:" + kind + ":" + id
}

// ListingCache keeps rendered GET responses in redis. All methods are no-ops
// on a nil cache so handlers can run without redis.
type ListingCache struct {
	Redis *redisx.Client
	TTL   time.Duration
}

func NewListingCache(rdb *redisx.Client, ttl time.Duration) *ListingCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ListingCache{Redis: rdb, TTL: ttl}
}

func (c *ListingCache) Get(ctx context.Context, kind, id string) (string, bool) {
	if c == nil || c.Redis == nil {
		return "", false
	}
	val, err := c.Redis.Get(ctx, CacheKey(kind, id))
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

func (c *ListingCache) Set(ctx context.Context, kind, id string, payload []byte) {
	if c == nil || c.Redis == nil {
		return
	}
	_ = c.Redis.Set(ctx, CacheKey(kind, id), string(payload), c.TTL)
}

func (c *ListingCache) Del(ctx context.Context, kind, id string) {
	if c == nil || c.Redis == nil {
		return
	}
	_ = c.Redis.Del(ctx, CacheKey(kind, id))
}
