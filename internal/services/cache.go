package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached data
	CacheKeyPrefix = "cache:"
	// DefaultCacheTTL is 6-12 hours (we'll use 8 hours as default)
	DefaultCacheTTL = 8 * time.Hour
	// MinCacheTTL is 6 hours
	MinCacheTTL = 6 * time.Hour
	// MaxCacheTTL is 12 hours
	MaxCacheTTL = 12 * time.Hour
)

// CacheService caches generated text (currently weekly insights) so
// repeated dashboard loads do not repeat model calls. The cache is never
// load-bearing: failures are logged and treated as misses.
type CacheService struct {
	client *redis.Client
}

func NewCacheService(client *redis.Client) *CacheService {
	return &CacheService{client: client}
}

// GetString retrieves a cached string. ok is false on miss or error.
func (c *CacheService) GetString(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, CacheKeyPrefix+key).Result()
	if err != nil {
		return "", false // cache miss, not an error
	}
	return val, true
}

// SetString stores a string with the TTL clamped to 6-12 hours.
func (c *CacheService) SetString(ctx context.Context, key, value string, ttl time.Duration) {
	if ttl < MinCacheTTL {
		ttl = MinCacheTTL
	}
	if ttl > MaxCacheTTL {
		ttl = MaxCacheTTL
	}

	if err := c.client.Set(ctx, CacheKeyPrefix+key, value, ttl).Err(); err != nil {
		log.Printf("⚠️  cache set %s failed: %v", key, err)
	}
}

// CacheKey generates a cache key for a specific resource
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s:%s", resource, identifier)
}
