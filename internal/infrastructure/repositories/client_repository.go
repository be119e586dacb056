package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bookly/crm-saas/internal/core/domain/client"
	"github.com/bookly/crm-saas/internal/core/ports"
	"github.com/bookly/crm-saas/internal/infrastructure/db"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const clientColumns = `id, business_id, first_name, last_name, email, phone, phone_prefix, avatar, tags,
		last_visit, total_spent, visits, rating, notes, status, created_at, updated_at`

// clientRow is the scan target for the clients table.
type clientRow struct {
	ID          uuid.UUID      `db:"id"`
	BusinessID  string         `db:"business_id"`
	FirstName   string         `db:"first_name"`
	LastName    string         `db:"last_name"`
	Email       *string        `db:"email"`
	Phone       *string        `db:"phone"`
	PhonePrefix *string        `db:"phone_prefix"`
	Avatar      *string        `db:"avatar"`
	Tags        pq.StringArray `db:"tags"`
	LastVisit   *time.Time     `db:"last_visit"`
	TotalSpent  *float64       `db:"total_spent"`
	Visits      *int           `db:"visits"`
	Rating      *float64       `db:"rating"`
	Notes       *string        `db:"notes"`
	Status      string         `db:"status"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *clientRow) toDomain() *client.Client {
	return &client.Client{
		ID:          r.ID,
		BusinessID:  r.BusinessID,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		PhonePrefix: r.PhonePrefix,
		Avatar:      r.Avatar,
		Tags:        []string(r.Tags),
		LastVisit:   r.LastVisit,
		TotalSpent:  r.TotalSpent,
		Visits:      r.Visits,
		Rating:      r.Rating,
		Notes:       r.Notes,
		Status:      client.Status(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ClientRepository implements the client repository interface on Postgres
type ClientRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewClientRepository creates a new client repository
func NewClientRepository(database *db.Database, logger *logrus.Logger) ports.ClientRepository {
	return &ClientRepository{
		db:     database,
		logger: logger,
	}
}

// Create inserts a new client
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients (id, business_id, first_name, last_name, email, phone, phone_prefix, avatar, tags,
			last_visit, total_spent, visits, rating, notes, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.DB.ExecContext(ctx, query,
		c.ID, c.BusinessID, c.FirstName, c.LastName, c.Email, c.Phone, c.PhonePrefix, c.Avatar,
		pq.StringArray(nonNilTags(c.Tags)), c.LastVisit, c.TotalSpent, c.Visits, c.Rating, c.Notes,
		string(c.Status), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"client_id": c.ID, "business_id": c.BusinessID}).WithError(err).Error("db: failed to create client")
		}
		return fmt.Errorf("failed to create client: %w", err)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"client_id": c.ID, "business_id": c.BusinessID}).Info("db: client created")
	}
	return nil
}

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*client.Client, error) {
	var row clientRow
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	if err := r.db.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, client.ErrNotFound
		}
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"client_id": id}).WithError(err).Error("db: failed to get client by ID")
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return row.toDomain(), nil
}

// Update overwrites the mutable columns of an existing client
func (r *ClientRepository) Update(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET first_name = $2, last_name = $3, email = $4, phone = $5, phone_prefix = $6, avatar = $7,
			tags = $8, notes = $9, status = $10, rating = $11, updated_at = $12
		WHERE id = $1`

	result, err := r.db.DB.ExecContext(ctx, query,
		c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.PhonePrefix, c.Avatar,
		pq.StringArray(nonNilTags(c.Tags)), c.Notes, string(c.Status), c.Rating, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return client.ErrNotFound
	}
	return nil
}

// Delete removes a client
func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return client.ErrNotFound
	}
	return nil
}

// List returns the clients of one business matching filter, newest first
func (r *ClientRepository) List(ctx context.Context, filter client.ListFilter) ([]*client.Client, error) {
	if filter.BusinessID == "" {
		return nil, client.ErrBusinessIDRequired
	}
	query, args := buildListQuery(filter)

	var rows []clientRow
	if err := r.db.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		if r.logger != nil {
			r.logger.WithFields(logrus.Fields{"business_id": filter.BusinessID}).WithError(err).Error("db: failed to list clients")
		}
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	clients := make([]*client.Client, 0, len(rows))
	for i := range rows {
		clients = append(clients, rows[i].toDomain())
	}
	return clients, nil
}

// buildListQuery translates a list filter into SQL. The business scope is always applied;
// the search term is matched case-insensitively against any of the contact fields.
func buildListQuery(filter client.ListFilter) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT ` + clientColumns + ` FROM clients WHERE business_id = $1`)
	args := []any{filter.BusinessID}

	if status := filter.StatusFilter(); status != "" {
		args = append(args, string(status))
		fmt.Fprintf(&b, ` AND status = $%d`, len(args))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		fmt.Fprintf(&b, ` AND $%d = ANY(tags)`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		n := len(args)
		fmt.Fprintf(&b, ` AND (first_name ILIKE $%[1]d OR last_name ILIKE $%[1]d OR email ILIKE $%[1]d OR phone ILIKE $%[1]d)`, n)
	}
	b.WriteString(` ORDER BY created_at DESC, id DESC`)
	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside an ILIKE pattern (default escape character).
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
