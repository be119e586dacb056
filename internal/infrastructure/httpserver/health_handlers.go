package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	healthTimeout = 2 * time.Second

	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

type dependencyHealth struct {
	Status    string `json:"status"`
	Critical  bool   `json:"critical"`
	LatencyMs int64  `json:"latencyMs"`
}

type healthResponse struct {
	Status       string                      `json:"status"`
	Service      string                      `json:"service"`
	Timestamp    string                      `json:"timestamp"`
	Dependencies map[string]dependencyHealth `json:"dependencies"`
}

// healthCheck checks every dependency concurrently. A failing critical dependency makes
// the service unhealthy (503); a failing optional one, such as the list cache, only
// degrades it and still answers 200.
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	results := make([]dependencyHealth, len(s.healthCheckers))
	var g errgroup.Group
	for i, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		g.Go(func() error {
			start := time.Now()
			err := hc.Check(ctx)
			results[i] = dependencyHealth{
				Status:    statusHealthy,
				Critical:  hc.Critical(),
				LatencyMs: time.Since(start).Milliseconds(),
			}
			if err != nil {
				results[i].Status = statusUnhealthy
				if s.logger != nil {
					s.logger.WithFields(logrus.Fields{"dependency": hc.Name(), "critical": hc.Critical()}).WithError(err).Warn("health check failed")
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	resp := healthResponse{
		Status:       statusHealthy,
		Service:      "bookly-crm",
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Dependencies: make(map[string]dependencyHealth, len(results)),
	}
	for i, hc := range s.healthCheckers {
		if hc == nil {
			continue
		}
		dep := results[i]
		resp.Dependencies[hc.Name()] = dep
		if dep.Status == statusHealthy {
			continue
		}
		if dep.Critical {
			resp.Status = statusUnhealthy
		} else if resp.Status == statusHealthy {
			resp.Status = statusDegraded
		}
	}

	code := http.StatusOK
	if resp.Status == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
