package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bookly/crm-saas/internal/infrastructure/httpserver/helpers"
)

// MetricsMiddleware records request counts and latencies per route. Requests are also
// labelled with the list cache outcome the handler reported ("hit", "miss", or "none").
type MetricsMiddleware struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewMetricsMiddleware expects requestsTotal labelled (method, route, status, cache) and
// requestDuration labelled (method, route, cache).
func NewMetricsMiddleware(requestsTotal *prometheus.CounterVec, requestDuration *prometheus.HistogramVec) *MetricsMiddleware {
	return &MetricsMiddleware{
		requestsTotal:   requestsTotal,
		requestDuration: requestDuration,
	}
}

func (m *MetricsMiddleware) Handler() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			elapsed := time.Since(start).Seconds()

			// Unmatched paths share one series.
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			outcome := cacheOutcome(c)

			m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(responseStatus(c, err)), outcome).Inc()
			m.requestDuration.WithLabelValues(method, route, outcome).Observe(elapsed)
			return err
		}
	}
}

// responseStatus is the status the error handler will write when err is set; the
// response itself is not committed yet at this point.
func responseStatus(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func cacheOutcome(c echo.Context) string {
	v := strings.ToLower(c.Response().Header().Get(helpers.CacheHeader))
	if v == "" {
		return "none"
	}
	return v
}
