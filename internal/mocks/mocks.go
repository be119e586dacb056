package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/bookly/crm-saas/internal/core/domain/client"
	"github.com/bookly/crm-saas/internal/core/ports"
	"github.com/google/uuid"
)

// ClientRepositoryMock is a lightweight mock for ClientRepository
type ClientRepositoryMock struct {
	CreateFn  func(ctx context.Context, c *client.Client) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*client.Client, error)
	UpdateFn  func(ctx context.Context, c *client.Client) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
	ListFn    func(ctx context.Context, filter client.ListFilter) ([]*client.Client, error)
}

func (m *ClientRepositoryMock) Create(ctx context.Context, c *client.Client) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}
func (m *ClientRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, client.ErrNotFound
}
func (m *ClientRepositoryMock) Update(ctx context.Context, c *client.Client) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, c)
	}
	return nil
}
func (m *ClientRepositoryMock) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
func (m *ClientRepositoryMock) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return nil, nil
}

// ClientServiceMock mock
type ClientServiceMock struct {
	ListClientsFn  func(ctx context.Context, filter client.ListFilter) (*client.ListResult, error)
	GetClientFn    func(ctx context.Context, id uuid.UUID) (*client.View, error)
	CreateClientFn func(ctx context.Context, req *client.CreateClientRequest) (*client.View, error)
	UpdateClientFn func(ctx context.Context, id uuid.UUID, req *client.UpdateClientRequest) (*client.View, error)
	DeleteClientFn func(ctx context.Context, id uuid.UUID) error
}

func (m *ClientServiceMock) ListClients(ctx context.Context, filter client.ListFilter) (*client.ListResult, error) {
	if m.ListClientsFn != nil {
		return m.ListClientsFn(ctx, filter)
	}
	return &client.ListResult{Clients: []client.View{}, Raw: []byte("[]")}, nil
}
func (m *ClientServiceMock) GetClient(ctx context.Context, id uuid.UUID) (*client.View, error) {
	if m.GetClientFn != nil {
		return m.GetClientFn(ctx, id)
	}
	return nil, client.ErrNotFound
}
func (m *ClientServiceMock) CreateClient(ctx context.Context, req *client.CreateClientRequest) (*client.View, error) {
	if m.CreateClientFn != nil {
		return m.CreateClientFn(ctx, req)
	}
	return &client.View{}, nil
}
func (m *ClientServiceMock) UpdateClient(ctx context.Context, id uuid.UUID, req *client.UpdateClientRequest) (*client.View, error) {
	if m.UpdateClientFn != nil {
		return m.UpdateClientFn(ctx, id, req)
	}
	return &client.View{}, nil
}
func (m *ClientServiceMock) DeleteClient(ctx context.Context, id uuid.UUID) error {
	if m.DeleteClientFn != nil {
		return m.DeleteClientFn(ctx, id)
	}
	return nil
}

// RateLimitRepositoryMock mock
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, businessID string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, businessID string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, businessID, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// RateLimiterServiceMock mock
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, businessID string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, businessID string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, businessID)
	}
	return true, 1, 1, time.Now().Add(time.Minute), nil
}

// CacheStoreMock records the calls it receives. With no Fn set it behaves as an empty cache.
type CacheStoreMock struct {
	GetFn             func(ctx context.Context, key string) ([]byte, bool, error)
	SetFn             func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFn          func(ctx context.Context, key string) error
	DeleteByPatternFn func(ctx context.Context, pattern string) (int, error)
	PingFn            func(ctx context.Context) error

	mu       sync.Mutex
	Calls    []string
	Patterns []string
}

func (m *CacheStoreMock) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// CallsSnapshot returns a copy of the recorded call names.
func (m *CacheStoreMock) CallsSnapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Calls...)
}

// PatternsSnapshot returns a copy of the patterns passed to DeleteByPattern.
func (m *CacheStoreMock) PatternsSnapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.Patterns...)
}

func (m *CacheStoreMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.record("get")
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return nil, false, nil
}
func (m *CacheStoreMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.record("set")
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}
	return nil
}
func (m *CacheStoreMock) Delete(ctx context.Context, key string) error {
	m.record("delete")
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	return nil
}
func (m *CacheStoreMock) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	m.record("delete_by_pattern")
	m.mu.Lock()
	m.Patterns = append(m.Patterns, pattern)
	m.mu.Unlock()
	if m.DeleteByPatternFn != nil {
		return m.DeleteByPatternFn(ctx, pattern)
	}
	return 0, nil
}
func (m *CacheStoreMock) Ping(ctx context.Context) error {
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}

// HealthCheckerMock mock
type HealthCheckerMock struct {
	NameValue string
	Optional  bool
	CheckFn   func(ctx context.Context) error
}

func (m *HealthCheckerMock) Name() string   { return m.NameValue }
func (m *HealthCheckerMock) Critical() bool { return !m.Optional }
func (m *HealthCheckerMock) Check(ctx context.Context) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return nil
}

var (
	_ ports.ClientRepository    = (*ClientRepositoryMock)(nil)
	_ ports.ClientService       = (*ClientServiceMock)(nil)
	_ ports.RateLimitRepository = (*RateLimitRepositoryMock)(nil)
	_ ports.RateLimiterService  = (*RateLimiterServiceMock)(nil)
	_ ports.CacheStore          = (*CacheStoreMock)(nil)
	_ ports.HealthChecker       = (*HealthCheckerMock)(nil)
)
