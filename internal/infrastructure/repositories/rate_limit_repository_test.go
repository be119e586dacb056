package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func TestWindowKey(t *testing.T) {
	start := time.Unix(1700000040, 0)
	require.Equal(t, "ratelimit:business:123:1700000040", windowKey("ratelimit:business", "123", start))
}

func TestRateLimitRedisRepository_BackendDown(t *testing.T) {
	c := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer c.Close()

	fixed := time.Unix(1700000075, 0)
	repo := NewRateLimitRedisRepository(c)
	repo.now = func() time.Time { return fixed }

	count, start, err := repo.IncrementWindow(context.Background(), "123", time.Minute, "rl", 2*time.Minute)
	require.Error(t, err)
	require.Zero(t, count)
	require.Equal(t, fixed.Truncate(time.Minute), start)
}
