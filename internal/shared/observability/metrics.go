package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for RequestsTotal.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeSkipped  = "skipped"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics definitions
var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cssmodules_requests_total",
		Help: "Completion and definition requests by outcome.",
	}, []string{"operation", "outcome"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cssmodules_request_seconds",
		Help:    "Time spent serving a completion or definition request.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	ImportLookupDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cssmodules_import_lookup_seconds",
		Help:    "Time spent locating a stylesheet import in a source document.",
		Buckets: prometheus.DefBuckets,
	}, []string{"parser"})

	ClassNamesExtracted = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cssmodules_class_names_extracted",
		Help:    "Distinct class names found per stylesheet read.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})

	ConfigReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cssmodules_config_reloads_total",
		Help: "Configuration reloads triggered by the file watcher.",
	}, []string{"result"})

	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cssmodules_rate_limited_total",
		Help: "Transport requests rejected by the rate limiter.",
	})
)
