package repositories_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bookly/crm-saas/internal/application/listcache"
	"github.com/bookly/crm-saas/internal/core/domain/client"
	"github.com/bookly/crm-saas/internal/infrastructure/memcache"
	"github.com/bookly/crm-saas/internal/infrastructure/repositories"
	"github.com/bookly/crm-saas/internal/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func memoryStore() *listcache.Store {
	return listcache.NewStore(memcache.New(time.Minute), time.Second, nil)
}

func TestCachingClientRepository_GetByIDIsCached(t *testing.T) {
	ctx := context.Background()
	stored := &client.Client{ID: uuid.New(), BusinessID: "123", FirstName: "John", Tags: []string{"vip"}, CreatedAt: time.Now().UTC()}
	var gets atomic.Int32
	inner := &mocks.ClientRepositoryMock{GetByIDFn: func(ctx context.Context, id uuid.UUID) (*client.Client, error) {
		gets.Add(1)
		if id != stored.ID {
			return nil, client.ErrNotFound
		}
		cp := *stored
		return &cp, nil
	}}
	repo := repositories.NewCachingClientRepository(inner, memoryStore(), time.Minute)

	first, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	first.FirstName = "mutated"

	second, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	require.Equal(t, "John", second.FirstName)
	require.Equal(t, "123", second.BusinessID)
	require.Equal(t, []string{"vip"}, second.Tags)
	require.EqualValues(t, 1, gets.Load())

	_, err = repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestCachingClientRepository_WritesRefreshCache(t *testing.T) {
	ctx := context.Background()
	cl := &client.Client{ID: uuid.New(), BusinessID: "123", FirstName: "John"}
	var gets atomic.Int32
	inner := &mocks.ClientRepositoryMock{GetByIDFn: func(ctx context.Context, id uuid.UUID) (*client.Client, error) {
		gets.Add(1)
		return nil, client.ErrNotFound
	}}
	repo := repositories.NewCachingClientRepository(inner, memoryStore(), time.Minute)

	require.NoError(t, repo.Create(ctx, cl))
	got, err := repo.GetByID(ctx, cl.ID)
	require.NoError(t, err)
	require.Equal(t, "John", got.FirstName)

	cl.FirstName = "Jon"
	require.NoError(t, repo.Update(ctx, cl))
	got, err = repo.GetByID(ctx, cl.ID)
	require.NoError(t, err)
	require.Equal(t, "Jon", got.FirstName)
	require.Zero(t, gets.Load())

	require.NoError(t, repo.Delete(ctx, cl.ID))
	_, err = repo.GetByID(ctx, cl.ID)
	require.ErrorIs(t, err, client.ErrNotFound)
	require.EqualValues(t, 1, gets.Load())
}

func TestCachingClientRepository_NilCachePassesThrough(t *testing.T) {
	var lists atomic.Int32
	inner := &mocks.ClientRepositoryMock{ListFn: func(ctx context.Context, f client.ListFilter) ([]*client.Client, error) {
		lists.Add(1)
		return nil, nil
	}}
	repo := repositories.NewCachingClientRepository(inner, nil, time.Minute)
	_, err := repo.List(context.Background(), client.ListFilter{BusinessID: "1"})
	require.NoError(t, err)
	require.EqualValues(t, 1, lists.Load())
}

func TestCachingClientRepository_SlowBackendDoesNotStallLookups(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	stall := func() { <-release }
	cache := &mocks.CacheStoreMock{
		GetFn: func(ctx context.Context, key string) ([]byte, bool, error) {
			stall()
			return nil, false, nil
		},
		SetFn: func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
			stall()
			return nil
		},
		DeleteFn: func(ctx context.Context, key string) error {
			stall()
			return nil
		},
	}
	cl := &client.Client{ID: uuid.New(), BusinessID: "123", FirstName: "John"}
	inner := &mocks.ClientRepositoryMock{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*client.Client, error) {
			cp := *cl
			return &cp, nil
		},
		DeleteFn: func(ctx context.Context, id uuid.UUID) error { return nil },
	}
	repo := repositories.NewCachingClientRepository(inner, listcache.NewStore(cache, 20*time.Millisecond, nil), time.Minute)

	start := time.Now()
	got, err := repo.GetByID(context.Background(), cl.ID)
	require.NoError(t, err)
	require.Equal(t, "John", got.FirstName)
	require.NoError(t, repo.Delete(context.Background(), cl.ID))
	require.Less(t, time.Since(start), 500*time.Millisecond)
	require.Equal(t, []string{"get", "set", "delete"}, cache.CallsSnapshot())
}
