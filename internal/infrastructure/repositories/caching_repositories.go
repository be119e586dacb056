package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bookly/crm-saas/internal/application/listcache"
	"github.com/bookly/crm-saas/internal/core/cachekey"
	"github.com/bookly/crm-saas/internal/core/domain/client"
	"github.com/bookly/crm-saas/internal/core/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Utility helpers. Cache traffic goes through listcache.Store: calls are time-bounded and
// backend failures read as misses.
func cacheSetSilently(c *listcache.Store, ctx context.Context, key string, v any, ttl time.Duration) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	c.Set(ctx, key, b, ttl)
}

func cacheGet[T any](c *listcache.Store, ctx context.Context, key string) (*T, bool) {
	if c == nil {
		return nil, false
	}
	b, ok := c.Get(ctx, key)
	if !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return nil, false
	}
	return &v, true
}

func cacheDeleteSilently(c *listcache.Store, ctx context.Context, key string) {
	if c == nil {
		return
	}
	c.Delete(ctx, key)
}

// CachingClientRepository decorates a ClientRepository with cache-aside lookups of single
// records. Lists are not cached here; they go through the list cache in the service layer.
type CachingClientRepository struct {
	inner ports.ClientRepository
	cache *listcache.Store
	ttl   time.Duration
	sf    singleflight.Group
}

func NewCachingClientRepository(inner ports.ClientRepository, cache *listcache.Store, ttl time.Duration) ports.ClientRepository {
	return &CachingClientRepository{inner: inner, cache: cache, ttl: ttl}
}

func recordKey(id uuid.UUID) string {
	return cachekey.Record(cachekey.ClientRecord, id.String())
}

func (c *CachingClientRepository) Create(ctx context.Context, cl *client.Client) error {
	if err := c.inner.Create(ctx, cl); err != nil {
		return err
	}
	cacheSetSilently(c.cache, ctx, recordKey(cl.ID), cl, c.ttl)
	return nil
}

func (c *CachingClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	key := recordKey(id)
	if v, ok := cacheGet[client.Client](c.cache, ctx, key); ok {
		return v, nil
	}
	res, err, _ := c.sf.Do(key, func() (any, error) {
		cl, err := c.inner.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		cacheSetSilently(c.cache, ctx, key, cl, c.ttl)
		return cl, nil
	})
	if err != nil {
		return nil, err
	}
	cl, ok := res.(*client.Client)
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	// Callers mutate the record they get back; hand each one its own copy.
	cp := *cl
	cp.Tags = append([]string(nil), cl.Tags...)
	return &cp, nil
}

func (c *CachingClientRepository) Update(ctx context.Context, cl *client.Client) error {
	if err := c.inner.Update(ctx, cl); err != nil {
		return err
	}
	cacheSetSilently(c.cache, ctx, recordKey(cl.ID), cl, c.ttl)
	return nil
}

func (c *CachingClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	cacheDeleteSilently(c.cache, ctx, recordKey(id))
	return nil
}

func (c *CachingClientRepository) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	return c.inner.List(ctx, filter)
}
