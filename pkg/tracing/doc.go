// Package tracing provides a backend-agnostic tracing context for creating,
// nesting and safely closing distributed-tracing spans.
//
// The package decouples application code from the tracer actually recording
// spans: business logic opens scopes through a Builder, and the Builder
// delegates to one of three interchangeable backends selected at
// construction time:
//
//   - OTelBackend: delegates to an OpenTelemetry TracerProvider with
//     optional OTLP/HTTP export
//   - LoggingBackend: writes span start/finish and elapsed time to a log
//     sink, with synthetic but valid identifiers
//   - NoOpBackend: records nothing
//
// Core Features:
//   - Scoped span lifecycle: a span is finished exactly once, on every exit
//     path — success, error, panic, or cancellation of the wrapped work
//   - Parent/child span composition, including concurrent sibling scopes
//   - Trace and span identifier accessors for log correlation
//   - Pluggable backends behind a two-method capability interface
//   - Prometheus metrics via the SpanObserver seam
//
// Basic Usage:
//
//	import (
//		"context"
//		"github.com/Aleph-Alpha/tracing/pkg/logger"
//		"github.com/Aleph-Alpha/tracing/pkg/tracing"
//	)
//
//	// Create a logger and a backend
//	log := logger.NewLoggerClient(logger.Config{Level: "info"})
//	backend, err := tracing.NewOTelBackend(tracing.Config{
//		ServiceName:  "my-service",
//		AppEnv:       "development",
//		EnableExport: true,
//	}, log)
//	if err != nil {
//		log.Fatal("cannot initiate tracing backend", err, nil)
//	}
//
//	// Create a builder and open a root scope
//	builder := tracing.NewBuilder(backend, tracing.Config{
//		DefaultTags: map[string]string{"component": "ingest"},
//	})
//
//	err = builder.Build(ctx, "process-request", nil, func(ctx context.Context, span *tracing.TracingContext) error {
//		log.InfoWithContext(ctx, "processing", nil, nil) // carries trace_id/span_id
//
//		// Nest a child scope; it joins the parent's trace
//		return span.Child(ctx, "load-user", tracing.TagSet{"user.id": "123"},
//			func(ctx context.Context, child *tracing.TracingContext) error {
//				return loadUser(ctx)
//			})
//	})
//
// The scope's release is guaranteed: whether the wrapped function returns
// normally, returns an error, panics, or gives up because its context was
// cancelled, the span is finished exactly once and the original outcome is
// propagated unchanged. Tracing never masks a business error; at worst a
// backend failure degrades to missing trace data.
//
// HTTP Integration:
//
// HTTPMiddleware opens a root scope per request and stores the
// TracingContext in the request context:
//
//	handler := tracing.HTTPMiddleware(builder)(mux)
//
// FX Module Integration:
//
// This package provides an fx module for easy integration:
//
//	app := fx.New(
//		logger.FXModule,
//		tracing.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// Limitations:
//
// Cross-process trace propagation is not part of this package; the
// OpenTelemetry backend's own propagators can be used where needed. The
// logging backend does not render tags.
//
// Thread Safety:
//
// The Builder and TracingContext are safe for concurrent use. Sibling
// scopes opened from the same parent, sequentially or concurrently, are
// fully independent.
package tracing
