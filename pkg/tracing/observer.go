package tracing

import "time"

// SpanObserver receives a notification for every span started and finished
// through a Builder. It is the hook through which metrics collection is
// attached without coupling the core to a metrics library; the metrics
// package provides a Prometheus-backed implementation.
//
// Implementations must be safe for concurrent use: concurrent sibling
// scopes report from multiple goroutines.
type SpanObserver interface {
	// ObserveSpanStart is called after a span has been started successfully.
	ObserveSpanStart(backend, operation string)

	// ObserveSpanFinish is called after a span has been finished. err is the
	// terminal error of the traced computation, nil on success.
	ObserveSpanFinish(backend, operation string, duration time.Duration, err error)
}
