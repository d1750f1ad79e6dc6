package tracing

import (
	"context"
	"testing"
)

func TestNoOpBackendEmptyIdentifiers(t *testing.T) {
	backend := NewNoOpBackend()

	handle, err := backend.StartSpan("op", TagSet{"k": "v"}, nil)
	if err != nil {
		t.Fatalf("StartSpan must never fail, got %v", err)
	}
	if handle.TraceID != "" || handle.SpanID != "" {
		t.Errorf("expected empty identifiers, got trace=%q span=%q", handle.TraceID, handle.SpanID)
	}
	if err := backend.FinishSpan(handle); err != nil {
		t.Fatalf("FinishSpan must never fail, got %v", err)
	}
}

func TestNoOpBackendThroughBuilder(t *testing.T) {
	builder := NewBuilder(NewNoOpBackend(), Config{})

	err := builder.Build(context.Background(), "root", nil, func(ctx context.Context, span *TracingContext) error {
		if span.TraceID() != "" || span.SpanID() != "" {
			t.Error("expected empty identifiers from the no-op backend")
		}
		return span.Wrap(ctx, "child", func(ctx context.Context) error {
			return nil
		})
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
