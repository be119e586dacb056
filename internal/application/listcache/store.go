package listcache

import (
	"context"
	"time"

	"github.com/bookly/crm-saas/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// DefaultOpTimeout bounds every cache backend call.
const DefaultOpTimeout = 200 * time.Millisecond

// Store applies the fail-open policy to a cache backend. Every call is bounded by the
// operation timeout; failed or timed out reads are misses, failed writes are dropped.
// Backend errors are logged and counted, never returned.
type Store struct {
	backend ports.CacheStore
	timeout time.Duration
	logger  *logrus.Logger
}

// NewStore wraps backend. A nil backend gives a store that never hits.
func NewStore(backend ports.CacheStore, timeout time.Duration, logger *logrus.Logger) *Store {
	if timeout <= 0 {
		timeout = DefaultOpTimeout
	}
	return &Store{backend: backend, timeout: timeout, logger: logger}
}

type getResult struct {
	value []byte
	ok    bool
	err   error
}

// Get returns the cached bytes for key, or ok=false on a miss or any backend failure.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	if s == nil || s.backend == nil {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan getResult, 1)
	go func() {
		v, ok, err := s.backend.Get(ctx, key)
		done <- getResult{value: v, ok: ok, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			s.fail("get", logrus.Fields{"key": key}, r.err)
			return nil, false
		}
		return r.value, r.ok
	case <-ctx.Done():
		s.fail("get", logrus.Fields{"key": key}, ctx.Err())
		return nil, false
	}
}

// Set stores value under key. Failures are logged and swallowed. The write is detached
// from the caller's cancellation so a dropped request does not skip it.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if s == nil || s.backend == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.backend.Set(ctx, key, value, ttl) }()

	select {
	case err := <-done:
		if err != nil {
			s.fail("set", logrus.Fields{"key": key}, err)
		}
	case <-ctx.Done():
		s.fail("set", logrus.Fields{"key": key}, ctx.Err())
	}
}

// Delete removes key. Like Set it is detached from the caller's cancellation and
// failures are only logged.
func (s *Store) Delete(ctx context.Context, key string) {
	if s == nil || s.backend == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.backend.Delete(ctx, key) }()

	select {
	case err := <-done:
		if err != nil {
			s.fail("delete", logrus.Fields{"key": key}, err)
		}
	case <-ctx.Done():
		s.fail("delete", logrus.Fields{"key": key}, ctx.Err())
	}
}

// DeleteByPattern removes all keys matching pattern and returns how many went away.
// A failure is logged and reported as zero deletions.
func (s *Store) DeleteByPattern(ctx context.Context, pattern string) int {
	if s == nil || s.backend == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	type delResult struct {
		n   int
		err error
	}
	done := make(chan delResult, 1)
	go func() {
		n, err := s.backend.DeleteByPattern(ctx, pattern)
		done <- delResult{n: n, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			s.fail("delete_by_pattern", logrus.Fields{"pattern": pattern}, r.err)
			return 0
		}
		return r.n
	case <-ctx.Done():
		s.fail("delete_by_pattern", logrus.Fields{"pattern": pattern}, ctx.Err())
		return 0
	}
}

func (s *Store) fail(op string, fields logrus.Fields, err error) {
	backendErrors.WithLabelValues(op).Inc()
	if s.logger == nil {
		return
	}
	fields["op"] = op
	s.logger.WithFields(fields).WithError(err).Warn("cache backend error; continuing without cache")
}
