package tracing

import (
	"context"
)

// Builder is the factory for root tracing scopes. It is parameterized once,
// at construction time, with a backend and configuration (default tag set);
// every context tree built through it uses that backend for its whole
// lifetime.
//
// The Builder is safe for concurrent use and is typically created once per
// application, either directly or through the FXModule.
type Builder struct {
	backend     Backend
	defaultTags TagSet
	observer    SpanObserver
}

// NewBuilder creates a Builder bound to the given backend. The configured
// default tags are merged into the tag set of every span the Builder and its
// descendants open, with call-site tags winning on collision.
//
// Parameters:
//   - backend: The backend variant recording the spans
//   - cfg: Configuration carrying the default tag set
//
// Returns:
//   - *Builder: A Builder ready to open root scopes
//
// Example:
//
//	backend := tracing.NewLoggingBackend(log, tracing.Config{ServiceName: "user-service"})
//	builder := tracing.NewBuilder(backend, tracing.Config{
//	    DefaultTags: map[string]string{"service": "user-service"},
//	})
//
//	err := builder.Build(ctx, "process-request", nil, func(ctx context.Context, span *tracing.TracingContext) error {
//	    return process(ctx)
//	})
func NewBuilder(backend Backend, cfg Config) *Builder {
	return &Builder{
		backend:     backend,
		defaultTags: TagSet(cfg.DefaultTags),
	}
}

// WithObserver attaches a SpanObserver that is notified of every span start
// and finish in context trees built after the call. It returns the same
// Builder instance for chaining.
func (b *Builder) WithObserver(observer SpanObserver) *Builder {
	b.observer = observer
	return b
}

// Backend returns the backend this Builder was constructed with.
func (b *Builder) Backend() Backend {
	return b.backend
}

// Build opens a root scope and runs fn inside it.
//
// On acquisition the backend starts a parentless span; fn then runs with a
// derived context carrying the new TracingContext. On release — normal
// return, error, panic, or the wrapped computation observing cancellation —
// the span is finished exactly once. This guarantee holds for every exit
// path and is the central correctness property of the package.
//
// Error behavior:
//   - A StartSpan failure is returned as a *BackendError without running fn.
//   - An error from fn is returned unchanged after the span is finished;
//     the span records it as its terminal error.
//   - A panic in fn finishes the span and then re-panics.
//   - A FinishSpan failure is returned only when fn itself succeeded.
func (b *Builder) Build(ctx context.Context, operationName string, tags TagSet, fn RunFunc) error {
	scope, err := newScope(b.backend, operationName, b.defaultTags.merge(tags), nil, b.defaultTags, b.observer)
	if err != nil {
		return err
	}
	return scope.run(ctx, fn)
}
