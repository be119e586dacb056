package helpers

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	// BusinessIDParam is the query parameter naming the business a request is scoped to.
	BusinessIDParam = "businessId"
	// BusinessIDHeader is consulted when the query parameter is absent.
	BusinessIDHeader = "X-Business-ID"
	// CacheHeader reports whether a list response was served from the list cache.
	CacheHeader = "X-Cache"
)

// ResolveBusinessID returns the business a request targets, or "" when it names none.
func ResolveBusinessID(c echo.Context) string {
	if id := strings.TrimSpace(c.QueryParam(BusinessIDParam)); id != "" {
		return id
	}
	return strings.TrimSpace(c.Request().Header.Get(BusinessIDHeader))
}
