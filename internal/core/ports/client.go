package ports

import (
	"context"

	"github.com/bookly/crm-saas/internal/core/domain/client"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, c *client.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error)
	Update(ctx context.Context, c *client.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns every client of filter.BusinessID matching the filter, newest first.
	List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error)
}

// ClientService defines the interface for client business logic
type ClientService interface {
	ListClients(ctx context.Context, filter client.ListFilter) (*client.ListResult, error)
	GetClient(ctx context.Context, id uuid.UUID) (*client.View, error)
	CreateClient(ctx context.Context, req *client.CreateClientRequest) (*client.View, error)
	UpdateClient(ctx context.Context, id uuid.UUID, req *client.UpdateClientRequest) (*client.View, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
}
