package health

import (
	"context"

	"github.com/bookly/crm-saas/internal/core/ports"
	infraDB "github.com/bookly/crm-saas/internal/infrastructure/db"
)

// dbHealthChecker wraps the database for health checks. Clients are read from Postgres,
// so an outage there takes the service down.
type dbHealthChecker struct{ db *infraDB.Database }

func (d *dbHealthChecker) Name() string                    { return "database" }
func (d *dbHealthChecker) Critical() bool                  { return true }
func (d *dbHealthChecker) Check(ctx context.Context) error { return d.db.Ping(ctx) }

// cacheHealthChecker pings the list cache backend. Reads fail open when it is down, so
// the service only degrades.
type cacheHealthChecker struct {
	name  string
	cache ports.CacheStore
}

func (c *cacheHealthChecker) Name() string                    { return c.name }
func (c *cacheHealthChecker) Critical() bool                  { return false }
func (c *cacheHealthChecker) Check(ctx context.Context) error { return c.cache.Ping(ctx) }

// NewDBHealthChecker creates a health checker for the database.
func NewDBHealthChecker(db *infraDB.Database) ports.HealthChecker { return &dbHealthChecker{db: db} }

// NewCacheHealthChecker creates a health checker for a cache backend, reported under name
// (for example "redis").
func NewCacheHealthChecker(name string, cache ports.CacheStore) ports.HealthChecker {
	return &cacheHealthChecker{name: name, cache: cache}
}
