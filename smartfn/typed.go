package smartfn

import (
	"context"
	"encoding/json"
	"fmt"
)

// TypedFunc is a prompt bound to a backend with a declared structured result
// type. The schema is derived from T once at construction; a type that does
// not describe a JSON object surfaces as a ConfigurationError on the first
// call, not at construction.
type TypedFunc[T any] struct {
	b      *Backend
	p      *Prompt
	schema *Schema
	err    error // deferred construction failure
}

// Typed binds a prompt to the backend with result type T.
func Typed[T any](b *Backend, p *Prompt) *TypedFunc[T] {
	tf := &TypedFunc[T]{b: b, p: p}
	schema, err := SchemaFor[T]()
	if err != nil {
		tf.err = &ConfigurationError{
			Reason: fmt.Sprintf("cannot derive schema for result type %s", typeName[T]()),
			Cause:  err,
		}
		return tf
	}
	tf.schema = schema
	return tf
}

// Call invokes the function with positional arguments.
func (f *TypedFunc[T]) Call(ctx context.Context, args ...any) (TypedResult[T], error) {
	return f.call(ctx, args, nil)
}

// CallNamed invokes the function with named arguments.
func (f *TypedFunc[T]) CallNamed(ctx context.Context, named map[string]any) (TypedResult[T], error) {
	return f.call(ctx, nil, named)
}

func (f *TypedFunc[T]) call(ctx context.Context, args []any, named map[string]any) (TypedResult[T], error) {
	if f.err != nil {
		return TypedResult[T]{}, f.err
	}
	bc, err := f.p.resolve(args, named, f.schema.Name)
	if err != nil {
		return TypedResult[T]{}, err
	}
	res, err := f.b.invoke(ctx, bc, f.schema)
	if err != nil {
		return TypedResult[T]{}, err
	}
	var v T
	if err := json.Unmarshal([]byte(res.Text), &v); err != nil {
		return TypedResult[T]{}, &SchemaCoercionError{Schema: f.schema.Name, Raw: res.Text, Cause: err}
	}
	return TypedResult[T]{Result: res, Value: v}, nil
}

// RunTyped wraps and calls once with result type T, equivalent to Typed
// followed by Call.
func RunTyped[T any](ctx context.Context, b *Backend, p *Prompt, args ...any) (TypedResult[T], error) {
	return Typed[T](b, p).Call(ctx, args...)
}
