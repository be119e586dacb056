package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/bookly/crm-saas/internal/infrastructure/httpserver/helpers"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.logger != nil {
				fields := logrus.Fields{"method": c.Request().Method, "path": c.Path()}
				if id, ok := helpers.GetBusinessIDRaw(c); ok {
					fields["business_id"] = id
				}
				m.logger.WithFields(fields).Debug("incoming request")
			}
			return next(c)
		}
	}
}
