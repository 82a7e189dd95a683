package smartfn

import "context"

// Func is a prompt bound to a backend: the callable produced by wrapping.
// Funcs are cheap and hold no per-call state; concurrent calls are
// independent.
type Func struct {
	b      *Backend
	p      *Prompt
	schema *Schema // optional explicit response schema
}

// Wrap binds a prompt to the backend, returning a plain-text callable.
func (b *Backend) Wrap(p *Prompt) *Func {
	return &Func{b: b, p: p}
}

// WithSchema declares an explicit response schema for the wrapped prompt.
// The provider response is validated against it and Result.JSON carries the
// parsed object. Use Typed for coercion into a Go type.
func (f *Func) WithSchema(s *Schema) *Func {
	f.schema = s
	return f
}

// Call invokes the function with positional arguments, matched to the
// prompt's parameters in declaration order.
func (f *Func) Call(ctx context.Context, args ...any) (Result, error) {
	return f.call(ctx, args, nil)
}

// CallNamed invokes the function with named arguments.
func (f *Func) CallNamed(ctx context.Context, named map[string]any) (Result, error) {
	return f.call(ctx, nil, named)
}

func (f *Func) call(ctx context.Context, args []any, named map[string]any) (Result, error) {
	bc, err := f.p.resolve(args, named, f.schemaName())
	if err != nil {
		return Result{}, err
	}
	return f.b.invoke(ctx, bc, f.schema)
}

func (f *Func) schemaName() string {
	if f.schema == nil {
		return ""
	}
	return f.schema.Name
}

// Run wraps and calls in one step. It behaves identically to Wrap followed
// by Call, including debug mode, caching and error conditions.
func (b *Backend) Run(ctx context.Context, p *Prompt, args ...any) (Result, error) {
	return b.Wrap(p).Call(ctx, args...)
}
