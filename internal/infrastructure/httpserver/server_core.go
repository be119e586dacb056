package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/bookly/crm-saas/internal/core/ports"
	customMiddleware "github.com/bookly/crm-saas/internal/infrastructure/httpserver/middleware"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
}

type ServerDeps struct {
	ClientService      ports.ClientService
	RateLimiterService ports.RateLimiterService
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	clientService  ports.ClientService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{}

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		clientService:  deps.ClientService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.RateLimiterService,
			logger,
			requestsTotal,
			requestDuration,
		),
	}
	e.HTTPErrorHandler = server.handleError

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// requestValidator runs the ozzo rules a request type declares through Validate.
type requestValidator struct{}

func (v *requestValidator) Validate(i interface{}) error {
	if r, ok := i.(validation.Validatable); ok {
		return r.Validate()
	}
	return nil
}

const internalErrorMessage = "internal server error"

// handleError writes every error as {"error": "<message>"}. Errors that are not
// *echo.HTTPError become a 500 with a generic message.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := internalErrorMessage
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok && m != "" {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}
	if code >= http.StatusInternalServerError && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"method": c.Request().Method, "path": c.Path()}).WithError(err).Error("request failed")
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"error": msg})
	}
	if err != nil && s.logger != nil {
		s.logger.WithError(err).Warn("failed to write error response")
	}
}
