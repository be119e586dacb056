package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bookly/crm-saas/internal/core/domain/client"
	"github.com/bookly/crm-saas/internal/infrastructure/httpserver/helpers"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func (s *Server) listClients(c echo.Context) error {
	filter := client.ListFilter{
		BusinessID: helpers.ResolveBusinessID(c),
		Search:     strings.TrimSpace(c.QueryParam("search")),
		Status:     client.Status(strings.ToLower(strings.TrimSpace(c.QueryParam("status")))),
		Tag:        strings.TrimSpace(c.QueryParam("tag")),
	}
	if filter.BusinessID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, client.ErrBusinessIDRequired.Error())
	}
	if filter.Status != "" && filter.Status != client.StatusAll && !filter.Status.IsValid() {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
	}

	res, err := s.clientService.ListClients(c.Request().Context(), filter)
	if err != nil {
		return clientError(err)
	}

	if res.Cached {
		c.Response().Header().Set(helpers.CacheHeader, "HIT")
	} else {
		c.Response().Header().Set(helpers.CacheHeader, "MISS")
	}
	// The cached array is written as stored so hits and misses produce identical bodies.
	body := make([]byte, 0, len(res.Raw)+len(`{"clients":}`))
	body = append(body, `{"clients":`...)
	body = append(body, res.Raw...)
	body = append(body, '}')
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, body)
}

func (s *Server) createClient(c echo.Context) error {
	var req client.CreateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.BusinessID == "" {
		req.BusinessID = helpers.ResolveBusinessID(c)
	}
	if req.BusinessID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, client.ErrBusinessIDRequired.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	v, err := s.clientService.CreateClient(c.Request().Context(), &req)
	if err != nil {
		return clientError(err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (s *Server) getClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client ID")
	}
	v, err := s.clientService.GetClient(c.Request().Context(), id)
	if err != nil {
		return clientError(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Server) updateClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client ID")
	}
	var req client.UpdateClientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	v, err := s.clientService.UpdateClient(c.Request().Context(), id, &req)
	if err != nil {
		return clientError(err)
	}
	return c.JSON(http.StatusOK, v)
}

func (s *Server) deleteClient(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid client ID")
	}
	if err := s.clientService.DeleteClient(c.Request().Context(), id); err != nil {
		return clientError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// clientError maps service errors onto HTTP errors. Anything unexpected becomes a 500 with
// the cause kept as the internal error for logging.
func clientError(err error) error {
	var verrs validation.Errors
	switch {
	case errors.Is(err, client.ErrBusinessIDRequired):
		return echo.NewHTTPError(http.StatusBadRequest, client.ErrBusinessIDRequired.Error())
	case errors.Is(err, client.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, client.ErrNotFound.Error())
	case errors.As(err, &verrs):
		return echo.NewHTTPError(http.StatusBadRequest, verrs.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage).SetInternal(err)
}
