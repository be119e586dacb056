package ports

import (
	"context"
	"time"
)

// CacheStore defines the key-value contract the list cache runs on.
// Implementations report backend failures as errors; the fail-open policy is applied by
// the caller (see listcache.Store), never by the backend itself.
type CacheStore interface {
	// Get returns the raw bytes for key. ok=false if not found or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value for key with TTL, replacing any previous entry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes a single key. A missing key is not an error.
	Delete(ctx context.Context, key string) error
	// DeleteByPattern removes every key matching the glob pattern (`*`, `?`, `[...]`)
	// and returns how many were removed. Zero matches is not an error.
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
