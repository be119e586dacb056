package memcache

import (
	"context"
	"path"
	"time"

	"github.com/bookly/crm-saas/internal/core/ports"
	gocache "github.com/patrickmn/go-cache"
)

// Cache implements ports.CacheStore in process memory. It suits single-instance
// deployments and tests; entries are not shared between processes.
type Cache struct {
	c *gocache.Cache
}

// New creates an in-memory cache that sweeps expired entries every cleanupInterval.
func New(cleanupInterval time.Duration) *Cache {
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	return &Cache{c: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (m *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	v, ok := m.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	return b, true, nil
}

func (m *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	m.c.Set(key, value, ttl)
	return nil
}

func (m *Cache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.c.Delete(key)
	return nil
}

// DeleteByPattern walks the unexpired items and removes those matching the glob pattern.
func (m *Cache) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if _, err := path.Match(pattern, ""); err != nil {
		return 0, err
	}
	deleted := 0
	for key := range m.c.Items() {
		if err := ctx.Err(); err != nil {
			return deleted, err
		}
		if ok, _ := path.Match(pattern, key); ok {
			m.c.Delete(key)
			deleted++
		}
	}
	return deleted, nil
}

func (m *Cache) Ping(ctx context.Context) error { return ctx.Err() }

var _ ports.CacheStore = (*Cache)(nil)
