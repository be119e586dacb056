package httpserver

import (
	"net/http"

	"github.com/bookly/crm-saas/internal/infrastructure/httpserver/helpers"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Logger())
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORSWithConfig(s.corsConfig()))
	s.echo.Use(middleware.RequestID())

	s.echo.Use(s.middleware.Metrics.Handler())

	s.echo.Use(s.middleware.Business.ResolveBusiness())
	s.echo.Use(s.middleware.Logging.RequestLogging())
	s.echo.Use(s.middleware.RateLimit.Handler())
}

func (s *Server) corsConfig() middleware.CORSConfig {
	cfg := middleware.DefaultCORSConfig
	if s.config != nil && len(s.config.AllowedOrigins) > 0 {
		cfg.AllowOrigins = s.config.AllowedOrigins
	}
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, helpers.BusinessIDHeader}
	cfg.ExposeHeaders = []string{helpers.CacheHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"}
	return cfg
}
