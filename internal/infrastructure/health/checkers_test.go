package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/bookly/crm-saas/internal/infrastructure/health"
	"github.com/bookly/crm-saas/internal/mocks"
	"github.com/stretchr/testify/require"
)

func TestCacheHealthChecker(t *testing.T) {
	down := errors.New("down")
	cache := &mocks.CacheStoreMock{PingFn: func(ctx context.Context) error { return down }}

	c := health.NewCacheHealthChecker("redis", cache)
	require.Equal(t, "redis", c.Name())
	require.False(t, c.Critical())
	require.ErrorIs(t, c.Check(context.Background()), down)

	require.NoError(t, health.NewCacheHealthChecker("memory", &mocks.CacheStoreMock{}).Check(context.Background()))
}
