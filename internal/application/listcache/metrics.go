package listcache

import "github.com/prometheus/client_golang/prometheus"

var (
	lookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookly_list_cache_requests_total",
			Help: "List cache lookups by namespace and result (hit, miss, error for undecodable entries)",
		},
		[]string{"namespace", "result"},
	)

	invalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookly_list_cache_invalidations_total",
			Help: "Tenant-wide list cache invalidations by namespace",
		},
		[]string{"namespace"},
	)

	backendErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookly_list_cache_backend_errors_total",
			Help: "Cache backend failures absorbed by the fail-open policy, by operation",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(lookups)
	prometheus.MustRegister(invalidations)
	prometheus.MustRegister(backendErrors)
}
