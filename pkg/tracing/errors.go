package tracing

import (
	"errors"
	"fmt"
)

// Common tracing errors.
var (
	// ErrBackendFailure is the sentinel matched by errors.Is for any
	// *BackendError returned from a backend call.
	ErrBackendFailure = errors.New("tracing: backend failure")

	// ErrForeignHandle is returned when a backend is asked to finish a span
	// handle it did not create. This indicates a programming error, not a
	// transient condition.
	ErrForeignHandle = errors.New("tracing: span handle not owned by this backend")
)

// BackendError wraps a failure reported by the underlying tracer client
// (for example a transport error while setting up the exporter). It is
// surfaced synchronously to the caller that opened the scope and is never
// retried by the core; retry, if desired, is the backend's responsibility.
type BackendError struct {
	// Backend is the variant name of the backend that failed.
	Backend string

	// Op is the backend operation that failed ("start" or "finish").
	Op string

	// Cause is the underlying error from the tracer client.
	Cause error
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("tracing: %s backend %s failed: %v", e.Backend, e.Op, e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As chains.
func (e *BackendError) Unwrap() error {
	return e.Cause
}

// Is reports ErrBackendFailure as a match so callers can classify any
// backend failure without knowing the concrete backend.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackendFailure
}

// IsBackendFailure checks if the error originates from a backend call.
func IsBackendFailure(err error) bool {
	return errors.Is(err, ErrBackendFailure)
}

// newBackendError wraps cause into a *BackendError for the given backend
// variant and operation.
func newBackendError(backend, op string, cause error) error {
	return &BackendError{Backend: backend, Op: op, Cause: cause}
}
