package ports

import "context"

// HealthChecker abstracts a dependency health check.
// Implementations should return error if unhealthy. Critical reports whether the service
// can still answer requests while the dependency is down.
type HealthChecker interface {
	Name() string
	Critical() bool
	Check(ctx context.Context) error
}
