package client

import (
	"errors"
	"slices"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

var (
	ErrBusinessIDRequired = errors.New("businessId is required")
	ErrNotFound           = errors.New("client not found")
)

// Client is the stored record of a business customer. Optional columns are pointers so
// that a missing value can be told apart from a zero value.
type Client struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	BusinessID  string     `json:"business_id" db:"business_id"`
	FirstName   string     `json:"first_name" db:"first_name"`
	LastName    string     `json:"last_name" db:"last_name"`
	Email       *string    `json:"email,omitempty" db:"email"`
	Phone       *string    `json:"phone,omitempty" db:"phone"`
	PhonePrefix *string    `json:"phone_prefix,omitempty" db:"phone_prefix"`
	Avatar      *string    `json:"avatar,omitempty" db:"avatar"`
	Tags        []string   `json:"tags,omitempty" db:"tags"`
	LastVisit   *time.Time `json:"last_visit,omitempty" db:"last_visit"`
	TotalSpent  *float64   `json:"total_spent,omitempty" db:"total_spent"`
	Visits      *int       `json:"visits,omitempty" db:"visits"`
	Rating      *float64   `json:"rating,omitempty" db:"rating"`
	Notes       *string    `json:"notes,omitempty" db:"notes"`
	Status      Status     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"

	// StatusAll is the list filter sentinel meaning "no status filter".
	StatusAll Status = "all"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	default:
		return false
	}
}

// ListFilter carries the query parameters of a client list request.
type ListFilter struct {
	BusinessID string
	Search     string
	Status     Status
	Tag        string
}

// Params returns the non-tenant filters keyed by their query parameter names.
// "all" is folded into the empty status so both spellings share a cache entry.
func (f ListFilter) Params() map[string]string {
	status := f.Status
	if status == StatusAll {
		status = ""
	}
	return map[string]string{
		"search": f.Search,
		"status": string(status),
		"tag":    f.Tag,
	}
}

// StatusFilter returns the status to match exactly, or "" when every status is wanted.
func (f ListFilter) StatusFilter() Status {
	if f.Status == StatusAll {
		return ""
	}
	return f.Status
}

// CreateClientRequest represents the request to create a client
type CreateClientRequest struct {
	BusinessID  string   `json:"businessId"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	PhonePrefix string   `json:"phonePrefix,omitempty"`
	Avatar      string   `json:"avatar,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

func (r CreateClientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BusinessID, validation.Required),
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Phone, validation.Length(0, 32)),
		validation.Field(&r.PhonePrefix, validation.Length(0, 8)),
		validation.Field(&r.Status, validation.In(StatusActive, StatusInactive)),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(5.0)),
	)
}

// UpdateClientRequest represents a partial update; nil fields are left untouched.
type UpdateClientRequest struct {
	FirstName   *string   `json:"firstName,omitempty"`
	LastName    *string   `json:"lastName,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	PhonePrefix *string   `json:"phonePrefix,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
}

func (r UpdateClientRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.NilOrNotEmpty, validation.Length(1, 100)),
		validation.Field(&r.Email, is.EmailFormat),
		validation.Field(&r.Phone, validation.Length(0, 32)),
		validation.Field(&r.PhonePrefix, validation.Length(0, 8)),
		validation.Field(&r.Status, validation.NilOrNotEmpty, validation.In(StatusActive, StatusInactive)),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(5.0)),
	)
}

// NewFromRequest builds a fresh client record owned by req.BusinessID.
func NewFromRequest(req *CreateClientRequest, now time.Time) *Client {
	status := req.Status
	if status == "" {
		status = StatusActive
	}
	c := &Client{
		ID:          uuid.New(),
		BusinessID:  req.BusinessID,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       optional(req.Email),
		Phone:       optional(req.Phone),
		PhonePrefix: optional(req.PhonePrefix),
		Avatar:      optional(req.Avatar),
		Tags:        NormalizeTags(req.Tags),
		Notes:       optional(req.Notes),
		Status:      status,
		Rating:      req.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return c
}

// Apply copies the set fields of req onto c.
func (c *Client) Apply(req *UpdateClientRequest, now time.Time) {
	if req.FirstName != nil {
		c.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		c.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		c.Email = optional(*req.Email)
	}
	if req.Phone != nil {
		c.Phone = optional(*req.Phone)
	}
	if req.PhonePrefix != nil {
		c.PhonePrefix = optional(*req.PhonePrefix)
	}
	if req.Avatar != nil {
		c.Avatar = optional(*req.Avatar)
	}
	if req.Tags != nil {
		c.Tags = NormalizeTags(*req.Tags)
	}
	if req.Notes != nil {
		c.Notes = optional(*req.Notes)
	}
	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Rating != nil {
		c.Rating = req.Rating
	}
	c.UpdatedAt = now
}

// NormalizeTags trims, drops empty entries and removes duplicates keeping first occurrence.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
