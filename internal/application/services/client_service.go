package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bookly/crm-saas/internal/application/listcache"
	"github.com/bookly/crm-saas/internal/core/domain/client"
	"github.com/bookly/crm-saas/internal/core/ports"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ClientService serves client lists through the list cache and clears a business's cached
// lists after every successful write.
type ClientService struct {
	repo        ports.ClientRepository
	lists       *listcache.Accessor[client.View]
	invalidator *listcache.Invalidator
	logger      *logrus.Logger
	now         func() time.Time
}

func NewClientService(repo ports.ClientRepository, lists *listcache.Accessor[client.View], invalidator *listcache.Invalidator, logger *logrus.Logger) ports.ClientService {
	return &ClientService{
		repo:        repo,
		lists:       lists,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *ClientService) ListClients(ctx context.Context, filter client.ListFilter) (*client.ListResult, error) {
	if filter.BusinessID == "" {
		return nil, client.ErrBusinessIDRequired
	}

	res, err := s.lists.Fetch(ctx, filter.BusinessID, filter.Params(), func(ctx context.Context) ([]client.View, error) {
		records, err := s.repo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return client.ToViews(records), nil
	})
	if err != nil {
		if errors.Is(err, listcache.ErrTenantRequired) {
			return nil, client.ErrBusinessIDRequired
		}
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return &client.ListResult{Clients: res.Items, Raw: res.Raw, Cached: res.Hit}, nil
}

func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*client.View, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v := client.ToView(c)
	return &v, nil
}

func (s *ClientService) CreateClient(ctx context.Context, req *client.CreateClientRequest) (*client.View, error) {
	if req.BusinessID == "" {
		return nil, client.ErrBusinessIDRequired
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := client.NewFromRequest(req, s.now().UTC())
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	s.invalidator.InvalidateTenant(ctx, c.BusinessID)

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"client_id": c.ID, "business_id": c.BusinessID}).Info("client created")
	}
	v := client.ToView(c)
	return &v, nil
}

func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, req *client.UpdateClientRequest) (*client.View, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Apply(req, s.now().UTC())
	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	s.invalidator.InvalidateTenant(ctx, c.BusinessID)

	v := client.ToView(c)
	return &v, nil
}

func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete client: %w", err)
	}
	s.invalidator.InvalidateTenant(ctx, c.BusinessID)

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"client_id": id, "business_id": c.BusinessID}).Info("client deleted")
	}
	return nil
}
