package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Aleph-Alpha/tracing/pkg/tracing"
)

// Metrics implements span-level Prometheus instrumentation for the tracing
// package, exposed for scraping via the /metrics HTTP endpoint.
//
// It implements tracing.SpanObserver and is attached through
// Builder.WithObserver; every span start and finish then updates:
//   - spans_started_total{backend, operation}
//   - spans_finished_total{backend, operation, status}
//   - span_duration_seconds{backend, operation}
type Metrics struct {
	// Server defines the HTTP server used to expose the /metrics endpoint.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service maintains its own isolated registry to prevent metric name collisions.
	Registry *prometheus.Registry

	spansStarted  *prometheus.CounterVec
	spansFinished *prometheus.CounterVec
	spanDuration  *prometheus.HistogramVec
}

var _ tracing.SpanObserver = (*Metrics)(nil)

// NewMetrics initializes and returns a new instance of the Metrics struct.
// It sets up a dedicated Prometheus registry, registers the span metrics and
// (optionally) default system collectors, wraps all metrics with a constant
// `service` label, and creates an HTTP server exposing the /metrics endpoint.
//
// Parameters:
//   - cfg: Configuration for the metrics server, including listening address,
//     service name, and whether to enable default collectors.
//
// Returns:
//   - *Metrics: A configured Metrics instance ready for lifecycle management
//     and Fx module integration.
//
// Example:
//
//	cfg := metrics.Config{
//	    Address:                 ":9090",
//	    ServiceName:             "document-index",
//	    EnableDefaultCollectors: true,
//	}
//	spanMetrics := metrics.NewMetrics(cfg)
//	builder := tracing.NewBuilder(backend, tracingCfg).WithObserver(spanMetrics)
//
// Access metrics at: http://localhost:9090/metrics
func NewMetrics(cfg Config) *Metrics {
	// A new isolated registry per service avoids metric collisions when
	// multiple services run in the same process.
	registry := prometheus.NewRegistry()

	// All metrics emitted by this service automatically include the label:
	//   service="<cfg.ServiceName>"
	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.spansStarted = createCounterVec(
		"spans_started_total",
		"Total number of spans started, by backend and operation",
		[]string{"backend", "operation"},
	)
	m.spansFinished = createCounterVec(
		"spans_finished_total",
		"Total number of spans finished, by backend, operation and terminal status",
		[]string{"backend", "operation", "status"},
	)
	m.spanDuration = createHistogramVec(
		"span_duration_seconds",
		"Span duration in seconds, by backend and operation",
		[]string{"backend", "operation"},
		prometheus.DefBuckets,
	)

	wrappedRegistry.MustRegister(
		m.spansStarted,
		m.spansFinished,
		m.spanDuration,
	)

	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	address := cfg.Address
	if address == "" {
		address = DefaultMetricsAddress
	}
	m.Server = &http.Server{
		Addr:    address,
		Handler: handler,
	}

	return m
}
