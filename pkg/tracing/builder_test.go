package tracing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

// recordingBackend is a fake backend that records every start and finish
// call for assertions.
type recordingBackend struct {
	mu        sync.Mutex
	started   []*SpanHandle
	startTags []TagSet
	finished  []*SpanHandle
	startErr  error
	finishErr error
	nextID    int
}

func (rb *recordingBackend) Name() string {
	return "recording"
}

func (rb *recordingBackend) StartSpan(operationName string, tags TagSet, parent *SpanHandle) (*SpanHandle, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.startErr != nil {
		return nil, rb.startErr
	}

	rb.nextID++
	handle := &SpanHandle{
		SpanID:        fmt.Sprintf("span-%d", rb.nextID),
		OperationName: operationName,
		StartTime:     time.Now(),
	}
	if parent != nil {
		handle.TraceID = parent.TraceID
		handle.ParentSpanID = parent.SpanID
	} else {
		handle.TraceID = fmt.Sprintf("trace-%d", rb.nextID)
	}

	rb.started = append(rb.started, handle)
	rb.startTags = append(rb.startTags, tags)
	return handle, nil
}

func (rb *recordingBackend) FinishSpan(handle *SpanHandle) error {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	handle.FinishTime = time.Now()
	rb.finished = append(rb.finished, handle)
	return rb.finishErr
}

func (rb *recordingBackend) finishedOperations() []string {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	names := make([]string, 0, len(rb.finished))
	for _, handle := range rb.finished {
		names = append(names, handle.OperationName)
	}
	return names
}

func TestBuildFinishesOnSuccess(t *testing.T) {
	backend := &recordingBackend{}
	builder := NewBuilder(backend, Config{})

	err := builder.Build(context.Background(), "root", nil, func(ctx context.Context, span *TracingContext) error {
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(backend.started) != 1 {
		t.Fatalf("expected 1 started span, got %d", len(backend.started))
	}
	if len(backend.finished) != 1 {
		t.Fatalf("expected 1 finished span, got %d", len(backend.finished))
	}
	if backend.finished[0] != backend.started[0] {
		t.Error("finished handle does not match started handle")
	}
}

func TestBuildFinishesOnError(t *testing.T) {
	backend := &recordingBackend{}
	builder := NewBuilder(backend, Config{})

	boom := errors.New("boom")
	err := builder.Build(context.Background(), "root", nil, func(ctx context.Context, span *TracingContext) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the original error, got %v", err)
	}
	if len(backend.finished) != 1 {
		t.Fatalf("expected 1 finished span, got %d", len(backend.finished))
	}
	if !errors.Is(backend.finished[0].Err, boom) {
		t.Errorf("expected terminal error recorded on the handle, got %v", backend.finished[0].Err)
	}
}

func TestBuildFinishesOnPanic(t *testing.T) {
	backend := &recordingBackend{}
	builder := NewBuilder(backend, Config{})

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected the panic to propagate")
			}
		}()
		_ = builder.Build(context.Background(), "root", nil, func(ctx context.Context, span *TracingContext) error {
			panic("kaboom")
		})
	}()

	if len(backend.finished) != 1 {
		t.Fatalf("expected 1 finished span after panic, got %d", len(backend.finished))
	}
	if backend.finished[0].Err == nil {
		t.Error("expected the panic recorded as the handle's terminal error")
	}
}

func TestBuildFinishesOnCancellation(t *testing.T) {
	backend := &recordingBackend{}
	builder := NewBuilder(backend, Config{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := builder.Build(ctx, "root", nil, func(ctx context.Context, span *TracingContext) error {
		<-ctx.Done()
		return ctx.Err()
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(backend.finished) != 1 {
		t.Fatalf("expected 1 finished span after cancellation, got %d", len(backend.finished))
	}
}

func TestBuildStartFailureSurfaced(t *testing.T) {
	startErr := newBackendError("recording", "start", errors.New("transport down"))
	backend := &recordingBackend{startErr: startErr}
	builder := NewBuilder(backend, Config{})

	ran := false
	err := builder.Build(context.Background(), "root", nil, func(ctx context.Context, span *TracingContext) error {
		ran = true
		return nil
	})
	if !IsBackendFailure(err) {
		t.Fatalf("expected a backend failure, got %v", err)
	}
	if ran {
		t.Error("the wrapped computation must not run when the span cannot be started")
	}
	if len(backend.finished) != 0 {
		t.Errorf("expected no finish calls, got %d", len(backend.finished))
	}
}

func TestBuildFinishFailureSurfacedOnSuccess(t *testing.T) {
	finishErr := newBackendError("recording", "finish", errors.New("flush failed"))
	backend := &recordingBackend{finishErr: finishErr}
	builder := NewBuilder(backend, Config{})

	err := builder.Build(context.Background(), "root", nil, func(ctx context.Context, span *TracingContext) error {
		return nil
	})
	if !IsBackendFailure(err) {
		t.Fatalf("expected the finish failure surfaced, got %v", err)
	}
}

func TestBuildFinishFailureNeverMasksComputationError(t *testing.T) {
	finishErr := newBackendError("recording", "finish", errors.New("flush failed"))
	backend := &recordingBackend{finishErr: finishErr}
	builder := NewBuilder(backend, Config{})

	boom := errors.New("boom")
	err := builder.Build(context.Background(), "root", nil, func(ctx context.Context, span *TracingContext) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the business error to win, got %v", err)
	}
}

func TestBuildMergesDefaultTags(t *testing.T) {
	backend := &recordingBackend{}
	builder := NewBuilder(backend, Config{
		DefaultTags: map[string]string{"service": "search-store", "tier": "backend"},
	})

	err := builder.Build(context.Background(), "root", TagSet{"tier": "api", "user.id": "42"}, func(ctx context.Context, span *TracingContext) error {
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	tags := backend.startTags[0]
	if tags["service"] != "search-store" {
		t.Errorf("expected default tag to be present, got %v", tags)
	}
	if tags["tier"] != "api" {
		t.Errorf("expected call-site tag to override default, got %v", tags)
	}
	if tags["user.id"] != "42" {
		t.Errorf("expected call-site tag to be present, got %v", tags)
	}
}

func TestScenarioParentChildSibling(t *testing.T) {
	backend := &recordingBackend{}
	builder := NewBuilder(backend, Config{})

	result := 0
	err := builder.Build(context.Background(), "Parent context", nil, func(ctx context.Context, parent *TracingContext) error {
		if err := parent.Child(ctx, "Child context", nil, func(ctx context.Context, child *TracingContext) error {
			result = 42 - 5
			return nil
		}); err != nil {
			return err
		}
		return parent.Child(ctx, "Sibling context", nil, func(ctx context.Context, sibling *TracingContext) error {
			result = 20 + 20
			return nil
		})
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != 40 {
		t.Errorf("expected final result 40, got %d", result)
	}

	finished := backend.finishedOperations()
	want := []string{"Child context", "Sibling context", "Parent context"}
	if len(finished) != len(want) {
		t.Fatalf("expected %d finish calls, got %d", len(want), len(finished))
	}
	for i := range want {
		if finished[i] != want[i] {
			t.Errorf("finish order: expected %q at position %d, got %q", want[i], i, finished[i])
		}
	}
}

func TestChildErrorPropagatesThroughParent(t *testing.T) {
	backend := &recordingBackend{}
	builder := NewBuilder(backend, Config{})

	boom := errors.New("boom")
	err := builder.Build(context.Background(), "parent", nil, func(ctx context.Context, parent *TracingContext) error {
		return parent.Child(ctx, "child", nil, func(ctx context.Context, child *TracingContext) error {
			return boom
		})
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the child error unchanged, got %v", err)
	}
	if len(backend.finished) != 2 {
		t.Fatalf("expected child and parent both finished, got %d finishes", len(backend.finished))
	}
}

func TestIdentifierRoundTrip(t *testing.T) {
	backend := &recordingBackend{}
	builder := NewBuilder(backend, Config{})

	var traceID, spanID string
	err := builder.Build(context.Background(), "root", nil, func(ctx context.Context, span *TracingContext) error {
		traceID = span.TraceID()
		spanID = span.SpanID()
		return nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	finished := backend.finished[0]
	if finished.TraceID != traceID {
		t.Errorf("expected finished trace id %q, got %q", traceID, finished.TraceID)
	}
	if finished.SpanID != spanID {
		t.Errorf("expected finished span id %q, got %q", spanID, finished.SpanID)
	}
}
