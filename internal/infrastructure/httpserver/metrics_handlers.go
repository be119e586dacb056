package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bookly",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route, status and list cache outcome",
		},
		[]string{"method", "route", "status", "cache"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "bookly",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latencies by method, route and list cache outcome",
			Buckets:   []float64{.002, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route", "cache"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal)
	prometheus.MustRegister(requestDuration)
}

// metricsEndpoint serves the default registry: HTTP series from this package plus the
// list cache counters registered by listcache.
func (s *Server) metricsEndpoint() echo.HandlerFunc {
	opts := promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError}
	if s.logger != nil {
		opts.ErrorLog = s.logger
	}
	return echo.WrapHandler(promhttp.HandlerFor(prometheus.DefaultGatherer, opts))
}
