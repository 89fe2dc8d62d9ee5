// Package metrics holds the Prometheus collectors of the service. They are
// registered with the default registry and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Submissions counts movie submissions by outcome: created, duplicate,
	// invalid, not_found, unavailable, failed.
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviedex_submissions_total",
			Help: "Total number of movie submissions by outcome",
		},
		[]string{"outcome"},
	)

	// CatalogRowsCreated counts rows inserted by the get-or-create layer.
	CatalogRowsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviedex_catalog_rows_created_total",
			Help: "Rows inserted by get-or-create, by entity",
		},
		[]string{"entity"},
	)

	MetadataLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviedex_metadata_lookup_duration_seconds",
			Help:    "Duration of metadata lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"result"},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviedex_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviedex_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviedex_http_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
	)
)
