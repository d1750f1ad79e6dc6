package tracing

import (
	"time"

	traceSpan "go.opentelemetry.io/otel/trace"
)

// TagSet is a collection of string key/value annotations attached to a span
// at creation time. Tags are fixed once the span has been started; mutating
// the map afterwards has no effect on the recorded span.
//
// Tag handling is backend specific:
//   - The OpenTelemetry backend forwards every tag verbatim as a span attribute.
//   - The logging backend accepts tags but does not render them. This is a
//     documented limitation of the logging backend, not an error.
//   - The no-op backend discards tags.
type TagSet map[string]string

// merge combines the builder's default tags with call-site tags.
// Call-site tags win on key collision. Returns nil when both inputs are empty
// so backends can skip attribute conversion entirely.
func (t TagSet) merge(overrides TagSet) TagSet {
	if len(t) == 0 && len(overrides) == 0 {
		return nil
	}
	merged := make(TagSet, len(t)+len(overrides))
	for k, v := range t {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// SpanHandle is the record of one started span. A handle is created by a
// backend's StartSpan, owned by exactly one TracingContext, and finalized
// exactly once when the owning scope exits.
//
// The identifier fields are opaque, backend-defined strings. The
// OpenTelemetry backend uses W3C trace-context hex identifiers; the logging
// backend generates synthetic identifiers in the same format; the no-op
// backend leaves both empty.
type SpanHandle struct {
	// TraceID identifies the trace this span belongs to. It is shared by
	// the span and all of its descendants.
	TraceID string

	// SpanID uniquely identifies this span within the trace.
	SpanID string

	// ParentSpanID is the SpanID of the parent span, or empty for a root span.
	ParentSpanID string

	// OperationName is the descriptive name the span was started with.
	OperationName string

	// StartTime is the instant the backend started the span.
	StartTime time.Time

	// FinishTime is set by the backend when the span is finished.
	// Zero while the span is still active.
	FinishTime time.Time

	// Err is the terminal error of the wrapped computation, recorded just
	// before the span is finished. Nil for spans that completed normally.
	Err error

	// otelSpan is the live OpenTelemetry span backing this handle.
	// Only set by the OpenTelemetry backend.
	otelSpan traceSpan.Span
}

// Elapsed returns the span duration. While the span is still active it is
// measured against the current time.
func (h *SpanHandle) Elapsed() time.Duration {
	if h.StartTime.IsZero() {
		return 0
	}
	if h.FinishTime.IsZero() {
		return time.Since(h.StartTime)
	}
	return h.FinishTime.Sub(h.StartTime)
}
