package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fore_backend_requests_total",
			Help: "Total number of requests sent to the FORE backend",
		},
		[]string{"endpoint", "status"},
	)

	BackendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fore_backend_request_duration_seconds",
			Help:    "Duration of requests to the FORE backend in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	RoundsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fore_rounds_submitted_total",
			Help: "Total number of round submissions by result",
		},
		[]string{"result"},
	)

	StaleSearchResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fore_stale_search_results_total",
			Help: "Course search responses dropped because a newer search was started",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fore_memory_sessions",
			Help: "Number of sessions held by the in-memory session store",
		},
	)
)

// Round submission results.
const (
	ResultPosted     = "posted"
	ResultIncomplete = "incomplete"
	ResultFailed     = "failed"
	// Another submit of the same round got there first.
	ResultDuplicate = "duplicate"
)
