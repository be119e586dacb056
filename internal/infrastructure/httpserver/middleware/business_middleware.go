package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/bookly/crm-saas/internal/infrastructure/httpserver/helpers"
)

type BusinessMiddleware struct {
	logger *logrus.Logger
}

func NewBusinessMiddleware(logger *logrus.Logger) *BusinessMiddleware {
	return &BusinessMiddleware{logger: logger}
}

// ResolveBusiness stores the business id named by the request, if any, in the echo context.
func (b *BusinessMiddleware) ResolveBusiness() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id := helpers.ResolveBusinessID(c); id != "" {
				helpers.SetBusinessID(c, id)
			}
			return next(c)
		}
	}
}
