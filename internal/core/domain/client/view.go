package client

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// DefaultPhonePrefix is used when a stored phone number has no country prefix.
const DefaultPhonePrefix = "+1"

const (
	lastVisitLayout = "2006-01-02"
	createdAtLayout = time.RFC3339
)

// View is the fixed response shape of a client in list and write responses.
// It is also the value stored in the list cache.
type View struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Avatar     string   `json:"avatar"`
	Tags       []string `json:"tags"`
	LastVisit  *string  `json:"lastVisit"`
	TotalSpent float64  `json:"totalSpent"`
	Visits     int      `json:"visits"`
	Rating     float64  `json:"rating"`
	Notes      string   `json:"notes"`
	Status     Status   `json:"status"`
	CreatedAt  string   `json:"createdAt"`
}

// ToView converts a stored record into its response shape. Every optional field gets a
// defined fallback, so the result never carries nulls other than LastVisit.
func ToView(c *Client) View {
	v := View{
		ID:        c.ID.String(),
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     deref(c.Email),
		Phone:     formatPhone(c.PhonePrefix, c.Phone),
		Avatar:    deref(c.Avatar),
		Tags:      make([]string, 0, len(c.Tags)),
		Notes:     deref(c.Notes),
		Status:    c.Status,
		CreatedAt: c.CreatedAt.UTC().Format(createdAtLayout),
	}
	v.Tags = append(v.Tags, c.Tags...)
	if !v.Status.IsValid() {
		v.Status = StatusActive
	}
	if c.LastVisit != nil && !c.LastVisit.IsZero() {
		lv := c.LastVisit.UTC().Format(lastVisitLayout)
		v.LastVisit = &lv
	}
	if c.TotalSpent != nil {
		v.TotalSpent = *c.TotalSpent
	}
	if c.Visits != nil {
		v.Visits = *c.Visits
	}
	if c.Rating != nil {
		v.Rating = *c.Rating
	}
	return v
}

// ToViews sorts records newest first and converts each of them.
func ToViews(clients []*Client) []View {
	SortNewestFirst(clients)
	views := make([]View, 0, len(clients))
	for _, c := range clients {
		if c == nil {
			continue
		}
		views = append(views, ToView(c))
	}
	return views
}

// SortNewestFirst orders by CreatedAt descending; equal timestamps fall back to ID descending.
func SortNewestFirst(clients []*Client) {
	sort.SliceStable(clients, func(i, j int) bool {
		a, b := clients[i], clients[j]
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() > b.ID.String()
	})
}

func formatPhone(prefix, number *string) string {
	n := strings.TrimSpace(deref(number))
	if n == "" {
		return ""
	}
	p := strings.TrimSpace(deref(prefix))
	if p == "" {
		p = DefaultPhonePrefix
	}
	return p + " " + n
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ListResult is a client list in response shape. Raw holds the exact JSON array that was
// cached (or freshly stored), so it can be written out without re-encoding.
type ListResult struct {
	Clients []View
	Raw     json.RawMessage
	Cached  bool
}
