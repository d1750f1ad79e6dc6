package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ObserveSpanStart increments the started-spans counter.
// Example: metrics.ObserveSpanStart("otel", "process-request")
func (m *Metrics) ObserveSpanStart(backend, operation string) {
	m.spansStarted.WithLabelValues(backend, operation).Inc()
}

// ObserveSpanFinish increments the finished-spans counter with a terminal
// status label ("ok" or "error") and records the span duration.
func (m *Metrics) ObserveSpanFinish(backend, operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.spansFinished.WithLabelValues(backend, operation, status).Inc()
	m.spanDuration.WithLabelValues(backend, operation).Observe(duration.Seconds())
}

// createCounterVec defines a new CounterVec with standard options.
// Used internally by NewMetrics to maintain consistency.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
// Used internally by NewMetrics for latency tracking.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}
