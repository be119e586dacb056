package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/bookly/crm-saas/internal/core/cachekey"
)

// unreachableClient points at a port nothing listens on.
func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	c := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestRedisCache_Namespaced(t *testing.T) {
	require.Equal(t, "bookly:clients:list:businessId=1", NewRedisCache(nil, "bookly", 0).namespaced("clients:list:businessId=1"))
	require.Equal(t, "k", NewRedisCache(nil, "", 0).namespaced("k"))
}

func TestRedisCache_DefaultScanCount(t *testing.T) {
	require.Equal(t, int64(DefaultScanCount), NewRedisCache(nil, "", 0).scanCount)
	require.Equal(t, int64(10), NewRedisCache(nil, "", 10).scanCount)
}

func TestRedisCache_UnreachableBackendReturnsErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	c := NewRedisCache(unreachableClient(t), "bookly", 0)

	_, ok, err := c.Get(ctx, "k")
	require.Error(t, err)
	require.False(t, ok)

	require.Error(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	n, err := c.DeleteByPattern(ctx, "clients:list:businessId=1:*")
	require.Error(t, err)
	require.Zero(t, n)

	require.Error(t, c.Ping(ctx))
}

func newMiniredisCache(t *testing.T, prefix string, scanCount int) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client, prefix, scanCount), mr
}

func TestRedisCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c, mr := newMiniredisCache(t, "bookly", 0)

	_, ok, err := c.Get(ctx, "clients:record:id=1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "clients:record:id=1", []byte(`{"id":"1"}`), time.Minute))
	require.True(t, mr.Exists("bookly:clients:record:id=1"))
	require.Equal(t, time.Minute, mr.TTL("bookly:clients:record:id=1"))

	v, ok, err := c.Get(ctx, "clients:record:id=1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"id":"1"}`, string(v))

	require.NoError(t, c.Delete(ctx, "clients:record:id=1"))
	require.False(t, mr.Exists("bookly:clients:record:id=1"))
	require.NoError(t, c.Delete(ctx, "clients:record:id=1"))
	require.NoError(t, c.Ping(ctx))
}

func TestRedisCache_DeleteByPatternKeepsOtherTenants(t *testing.T) {
	ctx := context.Background()
	c, mr := newMiniredisCache(t, "bookly", 0)

	keep := []string{
		cachekey.Build(cachekey.ClientList, "12", nil),
		cachekey.Build(cachekey.ClientList, "1234", map[string]string{"search": "jo"}),
		cachekey.Record(cachekey.ClientRecord, "123"),
	}
	gone := []string{
		cachekey.Build(cachekey.ClientList, "123", nil),
		cachekey.Build(cachekey.ClientList, "123", map[string]string{"status": "active"}),
		cachekey.Build(cachekey.ClientList, "123", map[string]string{"search": "jo", "tag": "vip"}),
	}
	for _, k := range append(append([]string{}, keep...), gone...) {
		require.NoError(t, c.Set(ctx, k, []byte("[]"), time.Minute))
	}
	// Same logical key without the prefix belongs to someone else sharing the server.
	require.NoError(t, mr.Set(gone[0], "foreign"))

	deleted := 0
	for _, p := range cachekey.TenantPatterns(cachekey.ClientList, "123") {
		n, err := c.DeleteByPattern(ctx, p)
		require.NoError(t, err)
		deleted += n
	}
	require.Equal(t, len(gone), deleted)

	for _, k := range gone {
		require.False(t, mr.Exists("bookly:"+k), k)
	}
	for _, k := range keep {
		require.True(t, mr.Exists("bookly:"+k), k)
	}
	require.True(t, mr.Exists(gone[0]))
}

func TestRedisCache_DeleteByPatternWalksEveryScanPage(t *testing.T) {
	ctx := context.Background()
	c, mr := newMiniredisCache(t, "bookly", 3)

	for i := 0; i < 25; i++ {
		key := cachekey.Build(cachekey.ClientList, "7", map[string]string{"search": fmt.Sprintf("q%d", i)})
		require.NoError(t, c.Set(ctx, key, []byte("[]"), time.Minute))
	}
	for i := 0; i < 10; i++ {
		key := cachekey.Build(cachekey.ClientList, "8", map[string]string{"search": fmt.Sprintf("q%d", i)})
		require.NoError(t, c.Set(ctx, key, []byte("[]"), time.Minute))
	}

	n, err := c.DeleteByPattern(ctx, cachekey.TenantPatterns(cachekey.ClientList, "7")[1])
	require.NoError(t, err)
	require.Equal(t, 25, n)
	require.Len(t, mr.Keys(), 10)

	n, err = c.DeleteByPattern(ctx, "clients:list:businessId=404:*")
	require.NoError(t, err)
	require.Zero(t, n)
}
