package listcache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bookly/crm-saas/internal/application/listcache"
	"github.com/bookly/crm-saas/internal/core/cachekey"
	"github.com/bookly/crm-saas/internal/infrastructure/memcache"
	"github.com/bookly/crm-saas/internal/mocks"
	"github.com/stretchr/testify/require"
)

func TestInvalidator_RemovesOnlyTenantEntries(t *testing.T) {
	ctx := context.Background()
	backend := memcache.New(time.Minute)
	gone := []string{
		cachekey.Build(cachekey.ClientList, "123", nil),
		cachekey.Build(cachekey.ClientList, "123", map[string]string{"search": "jo"}),
		cachekey.Build(cachekey.ClientList, "123", map[string]string{"status": "active"}),
	}
	kept := []string{
		cachekey.Build(cachekey.ClientList, "12", nil),
		cachekey.Build(cachekey.ClientList, "1234", map[string]string{"tag": "vip"}),
		cachekey.Build(cachekey.ClientList, "123:x", nil),
		cachekey.Build(cachekey.ClientList, "123*", map[string]string{"search": "anything"}),
	}
	for _, k := range append(append([]string{}, gone...), kept...) {
		require.NoError(t, backend.Set(ctx, k, []byte("[]"), time.Minute))
	}

	inv := listcache.NewInvalidator(listcache.NewStore(backend, 0, nil), cachekey.ClientList, nil)
	inv.InvalidateTenant(ctx, "123")

	for _, k := range gone {
		_, ok, _ := backend.Get(ctx, k)
		require.False(t, ok, k)
	}
	for _, k := range kept {
		_, ok, _ := backend.Get(ctx, k)
		require.True(t, ok, k)
	}

	// idempotent
	inv.InvalidateTenant(ctx, "123")
}

func TestInvalidator_BackendFailureIsAbsorbed(t *testing.T) {
	backend := &mocks.CacheStoreMock{DeleteByPatternFn: func(ctx context.Context, pattern string) (int, error) {
		return 0, errors.New("connection reset")
	}}
	inv := listcache.NewInvalidator(listcache.NewStore(backend, 0, nil), cachekey.ClientList, nil)

	inv.InvalidateTenant(context.Background(), "123")
	require.Equal(t, []string{"clients:list:businessId=123", "clients:list:businessId=123:*"}, backend.PatternsSnapshot())
}

func TestInvalidator_EmptyTenantIsNoop(t *testing.T) {
	backend := &mocks.CacheStoreMock{}
	inv := listcache.NewInvalidator(listcache.NewStore(backend, 0, nil), cachekey.ClientList, nil)
	inv.InvalidateTenant(context.Background(), "")
	require.Empty(t, backend.CallsSnapshot())
}
