package smartfn

import (
	"errors"
	"strings"
	"testing"
)

func TestResolve_SingleArgument(t *testing.T) {
	p := NewPrompt("generate_summary", "Generate a summary of the following text: {{ t }}", Required("t"))

	bc, err := p.resolve([]any{"Hello, world!"}, nil, "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	want := "Generate a summary of the following text: Hello, world!"
	if bc.prompt != want {
		t.Errorf("rendered prompt = %q, want %q", bc.prompt, want)
	}
	if bc.args["t"] != "Hello, world!" {
		t.Errorf("bound args = %v", bc.args)
	}
}

func TestResolve_MultipleArguments(t *testing.T) {
	p := NewPrompt("generate", "{{ a }} {{ b }} {{ c }}", Required("a"), Required("b"), Required("c"))

	bc, err := p.resolve([]any{"Hello", "world", "!"}, nil, "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if bc.prompt != "Hello world !" {
		t.Errorf("rendered prompt = %q, want %q", bc.prompt, "Hello world !")
	}
}

func TestResolve_NamedAndDefaultArguments(t *testing.T) {
	p := NewPrompt("describe", "Describe {{ subject }} in {{ lang }}.",
		Required("subject"), Optional("lang", "English"))

	bc, err := p.resolve(nil, map[string]any{"subject": "pikachu"}, "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if bc.prompt != "Describe pikachu in English." {
		t.Errorf("rendered prompt = %q", bc.prompt)
	}

	bc, err = p.resolve([]any{"pikachu"}, map[string]any{"lang": "French"}, "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if bc.prompt != "Describe pikachu in French." {
		t.Errorf("rendered prompt = %q", bc.prompt)
	}
}

func TestResolve_MissingRequiredArgument(t *testing.T) {
	p := NewPrompt("generate", "{{ a }} {{ b }}", Required("a"), Required("b"))

	_, err := p.resolve([]any{"Hello"}, nil, "")
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("expected BindingError, got %v", err)
	}
	if be.Param != "b" {
		t.Errorf("BindingError.Param = %q, want %q", be.Param, "b")
	}
}

func TestResolve_TooManyPositional(t *testing.T) {
	p := NewPrompt("generate", "{{ a }}", Required("a"))

	_, err := p.resolve([]any{"x", "y"}, nil, "")
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("expected BindingError, got %v", err)
	}
}

func TestResolve_UnknownNamedArgument(t *testing.T) {
	p := NewPrompt("generate", "{{ a }}", Required("a"))

	_, err := p.resolve(nil, map[string]any{"a": 1, "nope": 2}, "")
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("expected BindingError, got %v", err)
	}
}

func TestResolve_DuplicateArgument(t *testing.T) {
	p := NewPrompt("generate", "{{ a }}", Required("a"))

	_, err := p.resolve([]any{"x"}, map[string]any{"a": "y"}, "")
	var be *BindingError
	if !errors.As(err, &be) {
		t.Fatalf("expected BindingError, got %v", err)
	}
}

func TestRender_UnresolvedPlaceholder(t *testing.T) {
	p := NewPrompt("generate", "value is {{ missing }}", Required("a"))

	_, err := p.resolve([]any{"x"}, nil, "")
	var te *TemplateError
	if !errors.As(err, &te) {
		t.Fatalf("expected TemplateError, got %v", err)
	}
	if te.Placeholder != "missing" {
		t.Errorf("TemplateError.Placeholder = %q", te.Placeholder)
	}
}

func TestRender_LiteralTextVerbatim(t *testing.T) {
	tmpl := "No placeholders here. Braces like { this } stay put."
	p := NewPrompt("plain", tmpl)

	bc, err := p.resolve(nil, nil, "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if bc.prompt != tmpl {
		t.Errorf("rendered prompt = %q, want verbatim template", bc.prompt)
	}
}

func TestRender_NonStringValues(t *testing.T) {
	p := NewPrompt("count", "{{ n }} items, active={{ flag }}", Required("n"), Required("flag"))

	bc, err := p.resolve([]any{3, true}, nil, "")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if bc.prompt != "3 items, active=true" {
		t.Errorf("rendered prompt = %q", bc.prompt)
	}
}

func TestCacheKey_Deterministic(t *testing.T) {
	p := NewPrompt("generate", "{{ a }} {{ b }}", Required("a"), Required("b"))

	bc1, err := p.resolve([]any{"x", "y"}, nil, "Summary")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	// Same binding via named arguments must produce the same key.
	bc2, err := p.resolve(nil, map[string]any{"b": "y", "a": "x"}, "Summary")
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if bc1.cacheKey != bc2.cacheKey {
		t.Errorf("cache keys differ for identical bindings: %q vs %q", bc1.cacheKey, bc2.cacheKey)
	}
}

func TestCacheKey_SensitiveToInputs(t *testing.T) {
	p := NewPrompt("generate", "{{ a }}", Required("a"))

	base, _ := p.resolve([]any{"x"}, nil, "")
	diffArg, _ := p.resolve([]any{"y"}, nil, "")
	diffSchema, _ := p.resolve([]any{"x"}, nil, "Summary")

	if base.cacheKey == diffArg.cacheKey {
		t.Error("cache key ignores argument values")
	}
	if base.cacheKey == diffSchema.cacheKey {
		t.Error("cache key ignores declared result type")
	}

	other := NewPrompt("generate", "{{ a }}!", Required("a"))
	diffTmpl, _ := other.resolve([]any{"x"}, nil, "")
	if base.cacheKey == diffTmpl.cacheKey {
		t.Error("cache key ignores template text")
	}
}

func TestErrorMessages_CarryContext(t *testing.T) {
	p := NewPrompt("generate_summary", "Summarize {{ t }}", Required("t"))

	_, err := p.resolve(nil, nil, "")
	if err == nil || !strings.Contains(err.Error(), "generate_summary") {
		t.Errorf("binding error should name the prompt: %v", err)
	}
}
