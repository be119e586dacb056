package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimitRedisRepository keeps fixed-window request counters in Redis.
type RateLimitRedisRepository struct {
	r   redis.Cmdable
	now func() time.Time
}

func NewRateLimitRedisRepository(r redis.Cmdable) *RateLimitRedisRepository {
	return &RateLimitRedisRepository{r: r, now: time.Now}
}

// windowKey names the counter of businessID for the window starting at windowStart.
func windowKey(keyPrefix, businessID string, windowStart time.Time) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, businessID, windowStart.Unix())
}

// IncrementWindow increments the per-business counter of the current window.
func (repo *RateLimitRedisRepository) IncrementWindow(ctx context.Context, businessID string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	windowStart := repo.now().Truncate(window)
	key := windowKey(keyPrefix, businessID, windowStart)
	pipe := repo.r.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, windowStart, fmt.Errorf("failed to increment rate limit window: %w", err)
	}
	return int(incr.Val()), windowStart, nil
}
