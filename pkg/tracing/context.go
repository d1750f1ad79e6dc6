package tracing

import (
	"context"
	"fmt"
	"sync"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

var activeSpanKey contextKey

// RunFunc is the unit of work wrapped by a scope. It receives a context
// carrying the scope's TracingContext (so nested code and the correlated
// logger can reach it) and the TracingContext itself.
type RunFunc func(ctx context.Context, span *TracingContext) error

// TracingContext is the per-unit-of-work tracing object. It wraps exactly
// one SpanHandle together with the backend that produced it, exposes the
// trace and span identifiers for log correlation, and spawns child scopes.
//
// A TracingContext is owned by the scope that created it: it is only ever
// handed to the RunFunc of Builder.Build, TracingContext.Child or
// TracingContext.Wrap, and its span is finished exactly once when that
// function returns, errors, panics or is abandoned on context cancellation.
// Children are independent TracingContext instances with their own handles,
// never mutations of the parent, so concurrent sibling scopes are safe.
type TracingContext struct {
	handle      *SpanHandle
	backend     Backend
	defaultTags TagSet
	observer    SpanObserver

	finishOnce sync.Once
	finishErr  error
}

// TraceID returns the trace identifier of the current span. All descendants
// of this context share the same value. Empty for the no-op backend.
func (tc *TracingContext) TraceID() string {
	return tc.handle.TraceID
}

// SpanID returns the span identifier of the current span.
// Empty for the no-op backend.
func (tc *TracingContext) SpanID() string {
	return tc.handle.SpanID
}

// Handle returns the underlying span handle. The returned handle must be
// treated as read-only; it is finalized by the owning scope.
func (tc *TracingContext) Handle() *SpanHandle {
	return tc.handle
}

// Child opens a child scope of this context and runs fn inside it.
//
// The child span joins this context's trace: its TraceID equals the parent's
// TraceID and its ParentSpanID equals the parent's SpanID. The scope follows
// the same acquisition/release contract as Builder.Build — the child span is
// finished exactly once, on every exit path, and fn's outcome is propagated
// unchanged. Sibling children of the same parent, sequential or concurrent,
// are fully independent: closing one never touches the other or the parent.
//
// Because fn is lexically nested inside the parent's scope, the parent span
// cannot be finished before any child opened through this method.
//
// Example:
//
//	err := builder.Build(ctx, "handle-request", nil, func(ctx context.Context, span *tracing.TracingContext) error {
//	    return span.Child(ctx, "load-user", tracing.TagSet{"user.id": id}, func(ctx context.Context, child *tracing.TracingContext) error {
//	        return loadUser(ctx, id)
//	    })
//	})
func (tc *TracingContext) Child(ctx context.Context, operationName string, tags TagSet, fn RunFunc) error {
	child, err := newScope(tc.backend, operationName, tc.defaultTags.merge(tags), tc.handle, tc.defaultTags, tc.observer)
	if err != nil {
		return err
	}
	return child.run(ctx, fn)
}

// Wrap is sugar over Child for callers that do not need the child context
// value: it opens a child scope named operationName with no extra tags, runs
// work with the derived context, and releases the scope.
func (tc *TracingContext) Wrap(ctx context.Context, operationName string, work func(ctx context.Context) error) error {
	return tc.Child(ctx, operationName, nil, func(ctx context.Context, _ *TracingContext) error {
		return work(ctx)
	})
}

// newScope starts a span on backend and binds it to a fresh TracingContext.
// tags must already include any default tags; defaultTags is carried along
// unmerged so grandchildren inherit it.
func newScope(backend Backend, operationName string, tags TagSet, parent *SpanHandle, defaultTags TagSet, observer SpanObserver) (*TracingContext, error) {
	handle, err := backend.StartSpan(operationName, tags, parent)
	if err != nil {
		return nil, err
	}
	if observer != nil {
		observer.ObserveSpanStart(backend.Name(), operationName)
	}
	return &TracingContext{
		handle:      handle,
		backend:     backend,
		defaultTags: defaultTags,
		observer:    observer,
	}, nil
}

// run executes fn inside the scope and guarantees exactly one finish on
// every exit path. The original outcome of fn always wins: an error is
// returned unchanged and a panic is re-raised after the span is finished.
// A finish failure is only surfaced when fn itself succeeded, so tracing
// never masks a business error.
func (tc *TracingContext) run(ctx context.Context, fn RunFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			tc.finish(fmt.Errorf("panic: %v", r))
			panic(r)
		}
		finishErr := tc.finish(err)
		if err == nil {
			err = finishErr
		}
	}()
	err = fn(ContextWithSpan(ctx, tc), tc)
	return err
}

// finish finalizes the span at most once, recording cause as the span's
// terminal error. Subsequent calls return the result of the first.
func (tc *TracingContext) finish(cause error) error {
	tc.finishOnce.Do(func() {
		tc.handle.Err = cause
		tc.finishErr = tc.backend.FinishSpan(tc.handle)
		if tc.observer != nil {
			tc.observer.ObserveSpanFinish(tc.backend.Name(), tc.handle.OperationName, tc.handle.Elapsed(), cause)
		}
	})
	return tc.finishErr
}

// ContextWithSpan returns a copy of ctx carrying the given TracingContext.
// Build and Child do this automatically for the context handed to RunFunc;
// the function is exported for integration layers that thread a context
// through by other means.
func ContextWithSpan(ctx context.Context, tc *TracingContext) context.Context {
	return context.WithValue(ctx, activeSpanKey, tc)
}

// SpanFromContext extracts the active TracingContext from a context.
// Returns nil if no scope is active.
func SpanFromContext(ctx context.Context) *TracingContext {
	if ctx == nil {
		return nil
	}
	tc, _ := ctx.Value(activeSpanKey).(*TracingContext)
	return tc
}
