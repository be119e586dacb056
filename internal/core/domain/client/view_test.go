package client_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/bookly/crm-saas/internal/core/domain/client"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestToView_MissingOptionalFields(t *testing.T) {
	c := &client.Client{
		ID:        uuid.New(),
		FirstName: "John",
		LastName:  "Doe",
		CreatedAt: time.Date(2024, 1, 1, 9, 30, 0, 0, time.FixedZone("CET", 3600)),
	}

	v := client.ToView(c)
	require.Equal(t, "", v.Email)
	require.Equal(t, "", v.Phone)
	require.Equal(t, []string{}, v.Tags)
	require.Nil(t, v.LastVisit)
	require.Equal(t, client.StatusActive, v.Status)
	require.Equal(t, "2024-01-01T08:30:00Z", v.CreatedAt)

	raw, err := json.Marshal(v)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"tags":[]`)
	require.Contains(t, string(raw), `"email":""`)
	require.Contains(t, string(raw), `"lastVisit":null`)
}

func TestToView_PhoneAndExtras(t *testing.T) {
	lv := time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)
	spent, visits, rating := 120.5, 4, 4.5
	c := &client.Client{
		ID:          uuid.New(),
		FirstName:   "Jane",
		LastName:    "Roe",
		Email:       strPtr("jane@example.com"),
		Phone:       strPtr("5551234"),
		Tags:        []string{"vip"},
		LastVisit:   &lv,
		TotalSpent:  &spent,
		Visits:      &visits,
		Rating:      &rating,
		Status:      client.StatusInactive,
		CreatedAt:   time.Now(),
		PhonePrefix: nil,
	}

	v := client.ToView(c)
	require.Equal(t, "+1 5551234", v.Phone)
	require.Equal(t, "2024-03-05", *v.LastVisit)
	require.Equal(t, 120.5, v.TotalSpent)
	require.Equal(t, 4, v.Visits)
	require.Equal(t, 4.5, v.Rating)
	require.Equal(t, client.StatusInactive, v.Status)

	c.PhonePrefix = strPtr("+44")
	require.Equal(t, "+44 5551234", client.ToView(c).Phone)
}

func TestToViews_NewestFirstWithIDTieBreak(t *testing.T) {
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	a := &client.Client{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), FirstName: "A", CreatedAt: day1}
	b := &client.Client{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), FirstName: "B", CreatedAt: day1}
	c := &client.Client{ID: uuid.New(), FirstName: "C", CreatedAt: day2}

	views := client.ToViews([]*client.Client{a, c, b, nil})
	require.Len(t, views, 3)
	require.Equal(t, "C", views[0].FirstName)
	require.Equal(t, "B", views[1].FirstName)
	require.Equal(t, "A", views[2].FirstName)
}
