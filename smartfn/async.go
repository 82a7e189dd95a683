package smartfn

import (
	"context"

	"github.com/google/uuid"
)

// Invocation is the handle of one in-flight asynchronous call. Exactly one
// goroutine runs the invocation; Await is the single suspension point.
// Concurrent invocations share no mutable state beyond the optional cache,
// so two in-flight calls with the same cache key may both miss and both
// reach the provider.
type Invocation struct {
	// ID uniquely identifies this invocation.
	ID string

	done chan struct{}
	res  Result
	err  error
}

// Go launches the invocation with positional arguments without blocking.
func (f *Func) Go(ctx context.Context, args ...any) *Invocation {
	inv := newInvocation()
	go func() {
		defer close(inv.done)
		inv.res, inv.err = f.Call(ctx, args...)
	}()
	return inv
}

// GoNamed launches the invocation with named arguments without blocking.
func (f *Func) GoNamed(ctx context.Context, named map[string]any) *Invocation {
	inv := newInvocation()
	go func() {
		defer close(inv.done)
		inv.res, inv.err = f.CallNamed(ctx, named)
	}()
	return inv
}

func newInvocation() *Invocation {
	return &Invocation{ID: uuid.NewString(), done: make(chan struct{})}
}

// Done returns a channel closed when the invocation finishes.
func (inv *Invocation) Done() <-chan struct{} { return inv.done }

// Await blocks until the invocation finishes or ctx is cancelled.
// Cancellation is returned unchanged, never caught or retried; the
// underlying call keeps whatever context it was launched with.
func (inv *Invocation) Await(ctx context.Context) (Result, error) {
	select {
	case <-inv.done:
		return inv.res, inv.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// TypedInvocation is the async handle for a TypedFunc call.
type TypedInvocation[T any] struct {
	ID string

	done chan struct{}
	res  TypedResult[T]
	err  error
}

// Go launches the invocation with positional arguments without blocking.
func (f *TypedFunc[T]) Go(ctx context.Context, args ...any) *TypedInvocation[T] {
	inv := &TypedInvocation[T]{ID: uuid.NewString(), done: make(chan struct{})}
	go func() {
		defer close(inv.done)
		inv.res, inv.err = f.Call(ctx, args...)
	}()
	return inv
}

// GoNamed launches the invocation with named arguments without blocking.
func (f *TypedFunc[T]) GoNamed(ctx context.Context, named map[string]any) *TypedInvocation[T] {
	inv := &TypedInvocation[T]{ID: uuid.NewString(), done: make(chan struct{})}
	go func() {
		defer close(inv.done)
		inv.res, inv.err = f.CallNamed(ctx, named)
	}()
	return inv
}

// Done returns a channel closed when the invocation finishes.
func (inv *TypedInvocation[T]) Done() <-chan struct{} { return inv.done }

// Await blocks until the invocation finishes or ctx is cancelled.
func (inv *TypedInvocation[T]) Await(ctx context.Context) (TypedResult[T], error) {
	select {
	case <-inv.done:
		return inv.res, inv.err
	case <-ctx.Done():
		return TypedResult[T]{}, ctx.Err()
	}
}
