package redis

import (
	"context"
	"time"

	"github.com/bookly/crm-saas/internal/core/ports"
	"github.com/go-redis/redis/v8"
)

// DefaultScanCount is the COUNT hint passed to SCAN while deleting by pattern.
const DefaultScanCount = 500

// RedisCache implements ports.CacheStore using a Redis client.
type RedisCache struct {
	r redis.Cmdable
	// optional key prefix to namespace entries
	prefix    string
	scanCount int64
}

// NewRedisCache creates a new Redis-backed cache.
func NewRedisCache(r redis.Cmdable, prefix string, scanCount int) *RedisCache {
	if scanCount <= 0 {
		scanCount = DefaultScanCount
	}
	return &RedisCache{r: r, prefix: prefix, scanCount: int64(scanCount)}
}

func (c *RedisCache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

// Get implements CacheStore.Get.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ns := c.namespaced(key)
	val, err := c.r.Get(ctx, ns).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements CacheStore.Set.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	ns := c.namespaced(key)
	return c.r.Set(ctx, ns, value, ttl).Err()
}

// Delete implements CacheStore.Delete with a single DEL.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.r.Del(ctx, c.namespaced(key)).Err()
}

// DeleteByPattern implements CacheStore.DeleteByPattern by walking SCAN MATCH cursors and
// deleting each page of keys. Keys written concurrently may or may not be seen.
func (c *RedisCache) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	match := c.namespaced(pattern)
	deleted := 0
	var cursor uint64
	for {
		keys, next, err := c.r.Scan(ctx, cursor, match, c.scanCount).Result()
		if err != nil {
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.r.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, err
			}
			deleted += int(n)
		}
		cursor = next
		if cursor == 0 {
			return deleted, nil
		}
	}
}

// Ping implements CacheStore.Ping.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.r.Ping(ctx).Err()
}

var _ ports.CacheStore = (*RedisCache)(nil)
