package listcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bookly/crm-saas/internal/core/cachekey"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a populated list stays cached when no TTL is configured.
const DefaultTTL = 5 * time.Minute

var ErrTenantRequired = errors.New("listcache: tenant id is required")

// Result is a list served by an Accessor. Raw is the JSON array exactly as stored in the
// cache, whether it was read from there or has just been written.
type Result[T any] struct {
	Items []T
	Raw   json.RawMessage
	Hit   bool
	Key   string
}

// LoadFunc queries the primary store and returns the list already in response shape.
type LoadFunc[T any] func(ctx context.Context) ([]T, error)

// Accessor serves tenant-scoped lists of one namespace read-through: a hit returns the
// cached bytes untouched, a miss runs the loader once per key (concurrent misses for the
// same key share one load) and caches its output.
type Accessor[T any] struct {
	store  *Store
	ns     cachekey.Namespace
	ttl    time.Duration
	logger *logrus.Logger
	group  singleflight.Group
}

func NewAccessor[T any](store *Store, ns cachekey.Namespace, ttl time.Duration, logger *logrus.Logger) *Accessor[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Accessor[T]{store: store, ns: ns, ttl: ttl, logger: logger}
}

// Key returns the cache key for a list of tenantID filtered by params.
func (a *Accessor[T]) Key(tenantID string, params map[string]string) string {
	return cachekey.Build(a.ns, tenantID, params)
}

// Fetch returns the list for tenantID and params. Only loader errors are returned; cache
// trouble degrades to calling the loader.
func (a *Accessor[T]) Fetch(ctx context.Context, tenantID string, params map[string]string, load LoadFunc[T]) (*Result[T], error) {
	if tenantID == "" {
		return nil, ErrTenantRequired
	}
	key := a.Key(tenantID, params)

	result := "miss"
	if raw, ok := a.store.Get(ctx, key); ok {
		var items []T
		if err := json.Unmarshal(raw, &items); err == nil {
			lookups.WithLabelValues(a.ns.String(), "hit").Inc()
			a.debug(key, "list cache hit")
			return &Result[T]{Items: items, Raw: raw, Hit: true, Key: key}, nil
		} else if a.logger != nil {
			a.logger.WithFields(logrus.Fields{"key": key}).WithError(err).Warn("discarding undecodable list cache entry")
		}
		result = "error"
	}
	lookups.WithLabelValues(a.ns.String(), result).Inc()
	a.debug(key, "list cache miss")

	v, err, _ := a.group.Do(key, func() (any, error) {
		items, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if items == nil {
			items = []T{}
		}
		raw, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("failed to encode list: %w", err)
		}
		a.store.Set(ctx, key, raw, a.ttl)
		return &Result[T]{Items: items, Raw: raw, Key: key}, nil
	})
	if err != nil {
		return nil, err
	}
	res, ok := v.(*Result[T])
	if !ok {
		return nil, fmt.Errorf("unexpected type from singleflight result")
	}
	return res, nil
}

func (a *Accessor[T]) debug(key, msg string) {
	if a.logger != nil {
		a.logger.WithFields(logrus.Fields{"namespace": a.ns, "key": key}).Debug(msg)
	}
}
