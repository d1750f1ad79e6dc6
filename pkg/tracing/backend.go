package tracing

// Backend variant names, used for backend selection in Config and as the
// backend label on span metrics.
const (
	BackendOTel    = "otel"
	BackendLogging = "logging"
	BackendNoOp    = "noop"
)

// Backend is the capability interface through which spans are recorded.
// The core never talks to a tracer client directly; it only calls StartSpan
// and FinishSpan on whatever Backend the Builder was constructed with.
// This is the seam through which an OpenTelemetry, Jaeger or Datadog client
// plugs in.
//
// A backend is selected once, at Builder construction, and is fixed for the
// lifetime of the whole context tree. There is no dynamic backend switching
// mid-trace.
//
// Implementations must be safe for concurrent use: sibling scopes may start
// and finish spans from multiple goroutines at once. Backends that keep
// internal state (batching exporters, log sinks) are responsible for their
// own synchronization; the core adds no locking around backend calls.
type Backend interface {
	// Name returns the backend variant name (one of the Backend* constants
	// for the built-in variants). It is used in log lines and metric labels.
	Name() string

	// StartSpan creates a new span. When parent is nil the span is a trace
	// root with a fresh TraceID; otherwise the span joins the parent's trace
	// and records the parent's SpanID as its ParentSpanID.
	//
	// Tags are attached at creation time and immutable afterwards. A failure
	// to start a span is reported as a *BackendError; the built-in logging
	// and no-op backends never fail.
	StartSpan(operationName string, tags TagSet, parent *SpanHandle) (*SpanHandle, error)

	// FinishSpan finalizes a handle previously returned by StartSpan on the
	// same backend. The handle's Err field, when non-nil, carries the
	// terminal error of the traced computation and may be recorded on the
	// span. FinishSpan is called exactly once per started handle; the scoped
	// lifecycle in this package enforces that, implementations do not need
	// their own double-finish guard.
	FinishSpan(handle *SpanHandle) error
}

// Logger defines the interface for logging operations in the tracing package.
// This interface allows the package to use any logging implementation that
// conforms to these methods.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}
