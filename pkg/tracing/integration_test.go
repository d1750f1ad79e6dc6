package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// newRecordedOTelBackend wires the backend to an in-memory span recorder so
// the spans handed to the OpenTelemetry SDK can be inspected.
func newRecordedOTelBackend() (*OTelBackend, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewOTelBackendFromProvider(provider, &capturingLogger{}), recorder
}

func TestOTelBackendRecordsParentChildLineage(t *testing.T) {
	backend, recorder := newRecordedOTelBackend()
	builder := NewBuilder(backend, Config{})

	err := builder.Build(context.Background(), "parent", nil, func(ctx context.Context, parent *TracingContext) error {
		require.NotEmpty(t, parent.TraceID())
		require.NotEmpty(t, parent.SpanID())
		return parent.Child(ctx, "child", nil, func(ctx context.Context, child *TracingContext) error {
			assert.Equal(t, parent.TraceID(), child.TraceID())
			assert.Equal(t, parent.SpanID(), child.Handle().ParentSpanID)
			return nil
		})
	})
	require.NoError(t, err)

	ended := recorder.Ended()
	require.Len(t, ended, 2)

	childSpan, parentSpan := ended[0], ended[1]
	assert.Equal(t, "child", childSpan.Name())
	assert.Equal(t, "parent", parentSpan.Name())
	assert.Equal(t, parentSpan.SpanContext().TraceID(), childSpan.SpanContext().TraceID())
	assert.Equal(t, parentSpan.SpanContext().SpanID(), childSpan.Parent().SpanID())
}

func TestOTelBackendForwardsTags(t *testing.T) {
	backend, recorder := newRecordedOTelBackend()
	builder := NewBuilder(backend, Config{
		DefaultTags: map[string]string{"service": "search-store"},
	})

	err := builder.Build(context.Background(), "op", TagSet{"user.id": "42"}, func(ctx context.Context, span *TracingContext) error {
		return nil
	})
	require.NoError(t, err)

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	attrs := make(map[string]string)
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsString()
	}
	assert.Equal(t, "42", attrs["user.id"])
	assert.Equal(t, "search-store", attrs["service"])
}

func TestOTelBackendRecordsErrorStatus(t *testing.T) {
	backend, recorder := newRecordedOTelBackend()
	builder := NewBuilder(backend, Config{})

	boom := errors.New("boom")
	err := builder.Build(context.Background(), "op", nil, func(ctx context.Context, span *TracingContext) error {
		return boom
	})
	require.ErrorIs(t, err, boom)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
}

func TestOTelBackendIdentifierRoundTrip(t *testing.T) {
	backend, recorder := newRecordedOTelBackend()
	builder := NewBuilder(backend, Config{})

	var traceID, spanID string
	err := builder.Build(context.Background(), "op", nil, func(ctx context.Context, span *TracingContext) error {
		traceID = span.TraceID()
		spanID = span.SpanID()
		return nil
	})
	require.NoError(t, err)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, traceID, ended[0].SpanContext().TraceID().String())
	assert.Equal(t, spanID, ended[0].SpanContext().SpanID().String())
}

func TestOTelBackendRejectsForeignParentHandle(t *testing.T) {
	backend, _ := newRecordedOTelBackend()

	foreign, err := NewNoOpBackend().StartSpan("foreign", nil, nil)
	require.NoError(t, err)

	_, err = backend.StartSpan("child", nil, foreign)
	require.ErrorIs(t, err, ErrForeignHandle)
	require.True(t, IsBackendFailure(err))
}

func TestOTelBackendShutdownFlushes(t *testing.T) {
	backend, recorder := newRecordedOTelBackend()
	builder := NewBuilder(backend, Config{})

	err := builder.Build(context.Background(), "op", nil, func(ctx context.Context, span *TracingContext) error {
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, backend.Shutdown(context.Background()))
	assert.Len(t, recorder.Ended(), 1)
}
