package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	traceSpan "go.opentelemetry.io/otel/trace"
)

var _ Backend = (*OTelBackend)(nil)

// OTelBackend records spans through an OpenTelemetry TracerProvider. It is
// the "real tracer" variant: spans carry W3C trace-context identifiers and,
// when export is enabled, are batched out to an OTLP/HTTP collector, through
// which Jaeger, Datadog or any other OTLP-compatible system plugs in.
//
// The backend forwards tags verbatim as span attributes and records the
// traced computation's terminal error on the span before ending it.
type OTelBackend struct {
	provider *trace.TracerProvider
	tracer   traceSpan.Tracer
	logger   Logger
}

// NewOTelBackend creates and initializes an OpenTelemetry-backed tracing
// backend. This function sets up the OpenTelemetry tracer provider with the
// provided configuration and configures an OTLP/HTTP trace exporter if
// export is enabled.
//
// Parameters:
//   - cfg: Configuration for the backend, including service name, environment, and export settings
//   - logger: Logger for recording initialization events and errors
//
// Returns:
//   - *OTelBackend: A configured backend ready to record spans
//   - error: A *BackendError when the OTLP exporter cannot be initialized
//
// The function also configures resource attributes for the service, including:
//   - Service name
//   - Deployment environment
//   - Environment tag
//
// Example:
//
//	cfg := tracing.Config{
//	    ServiceName:  "user-service",
//	    AppEnv:       "production",
//	    EnableExport: true,
//	}
//
//	backend, err := tracing.NewOTelBackend(cfg, log)
//	if err != nil {
//	    log.Fatal("cannot initiate tracing backend", err, nil)
//	}
//	builder := tracing.NewBuilder(backend, cfg)
func NewOTelBackend(cfg Config, logger Logger) (*OTelBackend, error) {
	var options []trace.TracerProviderOption

	if cfg.EnableExport {
		client := otlptracehttp.NewClient()
		exporter, err := otlptrace.New(context.Background(), client)
		if err != nil {
			logger.Error("cannot initiate trace exporter", err, nil)
			return nil, newBackendError(BackendOTel, "start", err)
		}
		options = append(options, trace.WithBatcher(exporter))
	}

	options = append(options, trace.WithResource(resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.AppEnv),
		attribute.String("environment", cfg.AppEnv),
	)))

	return NewOTelBackendFromProvider(trace.NewTracerProvider(options...), logger), nil
}

// NewOTelBackendFromProvider wraps an existing TracerProvider. Useful when
// the provider is owned elsewhere, for example an in-memory provider in
// tests or a provider shared with other instrumentation.
func NewOTelBackendFromProvider(provider *trace.TracerProvider, logger Logger) *OTelBackend {
	return &OTelBackend{
		provider: provider,
		tracer:   provider.Tracer("github.com/Aleph-Alpha/tracing"),
		logger:   logger,
	}
}

// Name returns the backend variant name.
func (b *OTelBackend) Name() string {
	return BackendOTel
}

// StartSpan starts an OpenTelemetry span, parented to the given handle's
// span when parent is non-nil, and forwards every tag as a string attribute.
func (b *OTelBackend) StartSpan(operationName string, tags TagSet, parent *SpanHandle) (*SpanHandle, error) {
	ctx := context.Background()
	if parent != nil {
		if parent.otelSpan == nil {
			return nil, newBackendError(BackendOTel, "start", ErrForeignHandle)
		}
		ctx = traceSpan.ContextWithSpan(ctx, parent.otelSpan)
	}

	_, span := b.tracer.Start(ctx, operationName, traceSpan.WithAttributes(toAttributes(tags)...))

	sc := span.SpanContext()
	handle := &SpanHandle{
		TraceID:       sc.TraceID().String(),
		SpanID:        sc.SpanID().String(),
		OperationName: operationName,
		StartTime:     time.Now(),
		otelSpan:      span,
	}
	if parent != nil {
		handle.ParentSpanID = parent.SpanID
	}
	return handle, nil
}

// FinishSpan ends the underlying OpenTelemetry span, recording the traced
// computation's terminal error and an error status first when one is set.
func (b *OTelBackend) FinishSpan(handle *SpanHandle) error {
	if handle.otelSpan == nil {
		return newBackendError(BackendOTel, "finish", ErrForeignHandle)
	}

	if handle.Err != nil {
		handle.otelSpan.RecordError(handle.Err)
		handle.otelSpan.SetStatus(codes.Error, handle.Err.Error())
	}
	handle.FinishTime = time.Now()
	handle.otelSpan.End()
	return nil
}

// Shutdown flushes pending spans and releases provider resources. Called by
// the fx lifecycle hook on application stop.
func (b *OTelBackend) Shutdown(ctx context.Context) error {
	return b.provider.Shutdown(ctx)
}

// toAttributes converts a tag set into OpenTelemetry string attributes.
func toAttributes(tags TagSet) []attribute.KeyValue {
	if len(tags) == 0 {
		return nil
	}
	attributes := make([]attribute.KeyValue, 0, len(tags))
	for k, v := range tags {
		attributes = append(attributes, attribute.String(k, v))
	}
	return attributes
}
