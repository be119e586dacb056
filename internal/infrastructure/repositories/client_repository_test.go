package repositories

import (
	"context"
	"testing"

	"github.com/bookly/crm-saas/internal/core/domain/client"
	"github.com/stretchr/testify/require"
)

func TestBuildListQuery_TenantOnly(t *testing.T) {
	q, args := buildListQuery(client.ListFilter{BusinessID: "123"})
	require.Contains(t, q, "WHERE business_id = $1 ORDER BY created_at DESC, id DESC")
	require.Equal(t, []any{"123"}, args)
}

func TestBuildListQuery_AllStatusIsNotFiltered(t *testing.T) {
	q, args := buildListQuery(client.ListFilter{BusinessID: "123", Status: client.StatusAll})
	require.NotContains(t, q, "status =")
	require.Len(t, args, 1)
}

func TestBuildListQuery_AllFilters(t *testing.T) {
	q, args := buildListQuery(client.ListFilter{
		BusinessID: "123",
		Status:     client.StatusInactive,
		Tag:        "vip",
		Search:     "50%_off",
	})
	require.Contains(t, q, "business_id = $1")
	require.Contains(t, q, "AND status = $2")
	require.Contains(t, q, "AND $3 = ANY(tags)")
	require.Contains(t, q, "AND (first_name ILIKE $4 OR last_name ILIKE $4 OR email ILIKE $4 OR phone ILIKE $4)")
	require.Equal(t, []any{"123", "inactive", "vip", `%50\%\_off%`}, args)
}

func TestEscapeLike(t *testing.T) {
	require.Equal(t, `a\\b`, escapeLike(`a\b`))
	require.Equal(t, "plain", escapeLike("plain"))
}

func TestClientRepository_ListRequiresBusiness(t *testing.T) {
	repo := NewClientRepository(nil, nil)
	_, err := repo.List(context.Background(), client.ListFilter{})
	require.ErrorIs(t, err, client.ErrBusinessIDRequired)
}
