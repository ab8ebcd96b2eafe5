// Package metrics provides Prometheus metrics for the quoting service
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CalculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardrail_calculations_total",
			Help: "Total number of weight calculations served",
		},
		[]string{"part"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardrail_validation_failures_total",
			Help: "Calculation requests rejected before reaching the calculator",
		},
		[]string{"part", "field"},
	)

	QuotesSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guardrail_quotes_saved_total",
			Help: "Quotes saved, by kind (new or version)",
		},
		[]string{"kind"},
	)

	ActivityDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "guardrail_activity_dropped_total",
			Help: "Activity log entries dropped because the buffer was full",
		},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "guardrail_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func RecordCalculation(part string) {
	CalculationsTotal.WithLabelValues(part).Inc()
}

func RecordValidationFailure(part, field string) {
	ValidationFailures.WithLabelValues(part, field).Inc()
}

func RecordQuoteSaved(kind string) {
	QuotesSaved.WithLabelValues(kind).Inc()
}

func RecordRequest(method, path, status string, d time.Duration) {
	RequestDuration.WithLabelValues(method, path, status).Observe(d.Seconds())
}
