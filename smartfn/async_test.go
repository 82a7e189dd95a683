package smartfn

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestGo_AwaitResult(t *testing.T) {
	fp := &fakeProvider{response: "async answer"}
	b := testBackend(fp)

	f := b.Wrap(NewPrompt("generate_summary",
		"Generate a summary of the following text: {{ t }}", Required("t")))

	inv := f.Go(context.Background(), "Hello, world!")
	if inv.ID == "" {
		t.Error("invocation should carry an ID")
	}

	res, err := inv.Await(context.Background())
	if err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	if res.Text != "async answer" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestGo_ErrorPropagates(t *testing.T) {
	transportErr := errors.New("boom")
	fp := &fakeProvider{err: transportErr}
	b := testBackend(fp)

	f := b.Wrap(NewPrompt("generate", "{{ a }}", Required("a")))

	_, err := f.Go(context.Background(), "x").Await(context.Background())
	if !errors.Is(err, transportErr) {
		t.Fatalf("expected transport error unchanged, got %v", err)
	}
}

func TestGo_BindingErrorPropagates(t *testing.T) {
	fp := &fakeProvider{response: "never"}
	b := testBackend(fp)

	f := b.Wrap(NewPrompt("generate", "{{ a }}", Required("a")))

	_, err := f.Go(context.Background()).Await(context.Background())
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("expected BindingError, got %v", err)
	}
	if fp.callCount() != 0 {
		t.Errorf("provider contacted despite binding failure")
	}
}

func TestGo_ConcurrentCallsAreIndependent(t *testing.T) {
	fp := &fakeProvider{response: "out"}
	b := testBackend(fp)

	f := b.Wrap(NewPrompt("generate", "{{ a }}", Required("a")))

	const n = 16
	invs := make([]*Invocation, n)
	for i := range invs {
		invs[i] = f.Go(context.Background(), i)
	}

	var wg sync.WaitGroup
	for _, inv := range invs {
		wg.Add(1)
		go func(inv *Invocation) {
			defer wg.Done()
			if _, err := inv.Await(context.Background()); err != nil {
				t.Errorf("Await failed: %v", err)
			}
		}(inv)
	}
	wg.Wait()

	if fp.callCount() != n {
		t.Errorf("expected %d provider calls, got %d", n, fp.callCount())
	}
}

func TestAwait_CancellationPassesThrough(t *testing.T) {
	blocked := make(chan struct{})
	fp := &blockingProvider{release: blocked}
	b := New(Config{Model: "test-model"})
	b.pc = fp

	f := b.Wrap(NewPrompt("generate", "{{ a }}", Required("a")))

	inv := f.Go(context.Background(), "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := inv.Await(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	// Unblock the in-flight call; the handle still resolves afterwards.
	close(blocked)
	res, err := inv.Await(context.Background())
	if err != nil {
		t.Fatalf("second Await failed: %v", err)
	}
	if res.Text != "late" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestGoNamed_Typed(t *testing.T) {
	fp := &fakeProvider{response: `{"summary":"s","pros":[],"cons":[]}`}
	b := testBackend(fp)

	f := Typed[summarySchema](b, NewPrompt("generate", "Summarize: {{ t }}", Required("t")))

	res, err := f.GoNamed(context.Background(), map[string]any{"t": "text"}).Await(context.Background())
	if err != nil {
		t.Fatalf("Await failed: %v", err)
	}
	if res.Value.Summary != "s" {
		t.Errorf("Value = %+v", res.Value)
	}
}

// blockingProvider holds the call until release is closed.
type blockingProvider struct {
	release <-chan struct{}
}

func (p *blockingProvider) generate(ctx context.Context, _ generatePlan) (generateResult, error) {
	select {
	case <-p.release:
		return generateResult{Text: "late"}, nil
	case <-ctx.Done():
		return generateResult{}, ctx.Err()
	case <-time.After(5 * time.Second):
		return generateResult{}, errors.New("test timeout")
	}
}
