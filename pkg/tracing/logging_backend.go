package tracing

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

var _ Backend = (*LoggingBackend)(nil)

// LoggingBackend records spans as structured log lines instead of shipping
// them to a tracer. Every StartSpan emits a "span started" line and every
// FinishSpan a "span finished" line including the elapsed time in
// milliseconds, so traces remain inspectable in environments without a
// tracing stack.
//
// Identifiers are synthetic but valid: a fresh W3C-format trace id for every
// root span, inherited by descendants, so the correlated logger works with
// this backend exactly as with the OpenTelemetry one.
//
// Limitation: tags are accepted but not rendered into the log lines. This
// backend never fails.
type LoggingBackend struct {
	logger Logger
	level  string
}

// NewLoggingBackend creates a backend that writes span lifecycle events to
// the given logger. cfg.LogLevel selects the level the lines are emitted at
// (default "info").
func NewLoggingBackend(logger Logger, cfg Config) *LoggingBackend {
	level := cfg.LogLevel
	if level == "" {
		level = Info
	}
	return &LoggingBackend{
		logger: logger,
		level:  level,
	}
}

// Name returns the backend variant name.
func (lb *LoggingBackend) Name() string {
	return BackendLogging
}

// StartSpan generates synthetic identifiers, records the start time and
// emits a "span started" line. Tags are accepted but not rendered.
// A parented span inherits the parent's TraceID.
func (lb *LoggingBackend) StartSpan(operationName string, _ TagSet, parent *SpanHandle) (*SpanHandle, error) {
	handle := &SpanHandle{
		TraceID:       newTraceID(),
		SpanID:        newSpanID(),
		OperationName: operationName,
		StartTime:     time.Now(),
	}
	if parent != nil {
		handle.TraceID = parent.TraceID
		handle.ParentSpanID = parent.SpanID
	}

	lb.emit("span started", nil, map[string]interface{}{
		"operation":      handle.OperationName,
		"trace_id":       handle.TraceID,
		"span_id":        handle.SpanID,
		"parent_span_id": handle.ParentSpanID,
	})
	return handle, nil
}

// FinishSpan records the end time and emits a "span finished" line with the
// elapsed time in milliseconds.
func (lb *LoggingBackend) FinishSpan(handle *SpanHandle) error {
	handle.FinishTime = time.Now()

	lb.emit("span finished", handle.Err, map[string]interface{}{
		"operation":  handle.OperationName,
		"trace_id":   handle.TraceID,
		"span_id":    handle.SpanID,
		"elapsed_ms": handle.Elapsed().Milliseconds(),
	})
	return nil
}

// emit writes a span lifecycle line at the configured level.
func (lb *LoggingBackend) emit(msg string, err error, fields map[string]interface{}) {
	switch lb.level {
	case Debug:
		lb.logger.Debug(msg, err, fields)
	case Warning:
		lb.logger.Warn(msg, err, fields)
	case Error:
		lb.logger.Error(msg, err, fields)
	default:
		lb.logger.Info(msg, err, fields)
	}
}

// newTraceID generates a 16-byte hex trace identifier.
func newTraceID() string {
	return newHexID(16)
}

// newSpanID generates an 8-byte hex span identifier.
func newSpanID() string {
	return newHexID(8)
}

// newHexID returns n random bytes hex-encoded. Falls back to a time-based
// identifier if crypto/rand fails.
func newHexID(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return hex.EncodeToString([]byte(time.Now().Format(time.RFC3339Nano)))[:2*n]
	}
	return hex.EncodeToString(buf)
}
