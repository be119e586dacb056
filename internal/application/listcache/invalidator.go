package listcache

import (
	"context"

	"github.com/bookly/crm-saas/internal/core/cachekey"
	"github.com/sirupsen/logrus"
)

// Invalidator clears every cached list of a tenant in one namespace. Call it only after
// the primary store write has committed.
//
// A reader that missed before the write may still store pre-write data after the
// invalidation has run. That window is closed by the entry TTL, not by locking.
type Invalidator struct {
	store  *Store
	ns     cachekey.Namespace
	logger *logrus.Logger
}

func NewInvalidator(store *Store, ns cachekey.Namespace, logger *logrus.Logger) *Invalidator {
	return &Invalidator{store: store, ns: ns, logger: logger}
}

// InvalidateTenant deletes all list entries of tenantID. It is idempotent and never
// fails; backend errors are absorbed by the store.
func (i *Invalidator) InvalidateTenant(ctx context.Context, tenantID string) {
	if tenantID == "" {
		return
	}
	deleted := 0
	for _, pattern := range cachekey.TenantPatterns(i.ns, tenantID) {
		deleted += i.store.DeleteByPattern(ctx, pattern)
	}
	invalidations.WithLabelValues(i.ns.String()).Inc()
	if i.logger != nil {
		i.logger.WithFields(logrus.Fields{"namespace": i.ns, "tenant_id": tenantID, "deleted": deleted}).Debug("invalidated tenant list cache")
	}
}
