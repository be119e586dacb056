package client_test

import (
	"testing"
	"time"

	"github.com/bookly/crm-saas/internal/core/domain/client"
	"github.com/stretchr/testify/require"
)

func TestListFilter_ParamsFoldsAllStatus(t *testing.T) {
	f := client.ListFilter{BusinessID: "123", Status: client.StatusAll, Tag: "vip"}
	require.Equal(t, map[string]string{"search": "", "status": "", "tag": "vip"}, f.Params())
	require.Equal(t, client.Status(""), f.StatusFilter())

	f.Status = client.StatusActive
	require.Equal(t, "active", f.Params()["status"])
	require.Equal(t, client.StatusActive, f.StatusFilter())
}

func TestCreateClientRequest_Validate(t *testing.T) {
	ok := client.CreateClientRequest{BusinessID: "123", FirstName: "Amy", LastName: "Lee", Email: "amy@example.com"}
	require.NoError(t, ok.Validate())

	bad := ok
	bad.Email = "not-an-email"
	require.Error(t, bad.Validate())

	bad = ok
	bad.Status = "archived"
	require.Error(t, bad.Validate())

	r := 6.0
	bad = ok
	bad.Rating = &r
	require.Error(t, bad.Validate())

	bad = ok
	bad.LastName = ""
	require.Error(t, bad.Validate())
}

func TestUpdateClientRequest_Validate(t *testing.T) {
	require.NoError(t, client.UpdateClientRequest{}.Validate())

	empty := ""
	require.Error(t, client.UpdateClientRequest{FirstName: &empty}.Validate())

	st := client.StatusAll
	require.Error(t, client.UpdateClientRequest{Status: &st}.Validate())

	blank := client.Status("")
	require.Error(t, client.UpdateClientRequest{Status: &blank}.Validate())

	inactive := client.StatusInactive
	require.NoError(t, client.UpdateClientRequest{Status: &inactive}.Validate())
}

func TestNewFromRequest_DefaultsAndTags(t *testing.T) {
	now := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	c := client.NewFromRequest(&client.CreateClientRequest{
		BusinessID: "123",
		FirstName:  " Amy ",
		LastName:   "Lee",
		Email:      " ",
		Tags:       []string{"vip", " vip", "", "new"},
	}, now)

	require.Equal(t, client.StatusActive, c.Status)
	require.Equal(t, "Amy", c.FirstName)
	require.Nil(t, c.Email)
	require.Equal(t, []string{"vip", "new"}, c.Tags)
	require.Equal(t, now, c.CreatedAt)
}

func TestApply_PartialUpdate(t *testing.T) {
	c := client.NewFromRequest(&client.CreateClientRequest{BusinessID: "123", FirstName: "Amy", LastName: "Lee", Notes: "x"}, time.Now())
	later := c.UpdatedAt.Add(time.Hour)
	tags := []string{"regular"}
	c.Apply(&client.UpdateClientRequest{Tags: &tags}, later)

	require.Equal(t, "Amy", c.FirstName)
	require.Equal(t, "x", *c.Notes)
	require.Equal(t, []string{"regular"}, c.Tags)
	require.Equal(t, later, c.UpdatedAt)
}
