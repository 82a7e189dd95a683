package smartfn

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"regexp"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Prompt is an immutable descriptor of a prompt-backed function: its
// parameter list (declaration order matters for positional binding) and its
// {{ name }}-style template. Build it once and reuse it across calls.
type Prompt struct {
	name     string
	template string
	params   []Param
}

// NewPrompt declares a prompt-backed function.
func NewPrompt(name, template string, params ...Param) *Prompt {
	return &Prompt{name: name, template: template, params: params}
}

// Name returns the declared function name.
func (p *Prompt) Name() string { return p.name }

// Template returns the raw, unrendered template text.
func (p *Prompt) Template() string { return p.template }

// boundCall is the resolved state of one invocation.
type boundCall struct {
	args     map[string]any // parameter name -> supplied-or-default value
	prompt   string         // rendered template
	cacheKey string
}

func (p *Prompt) paramIndex(name string) int {
	for i, prm := range p.params {
		if prm.Name == name {
			return i
		}
	}
	return -1
}

// bind matches positional and named arguments to declared parameters and
// applies defaults, per standard call-binding rules.
func (p *Prompt) bind(args []any, named map[string]any) (map[string]any, error) {
	if len(args) > len(p.params) {
		return nil, &BindingError{
			Prompt: p.name,
			Reason: fmt.Sprintf("takes at most %d arguments, got %d", len(p.params), len(args)),
		}
	}

	bound := make(map[string]any, len(p.params))
	for i, v := range args {
		bound[p.params[i].Name] = v
	}
	for name, v := range named {
		if p.paramIndex(name) < 0 {
			return nil, &BindingError{Prompt: p.name, Param: name, Reason: "unknown parameter"}
		}
		if _, dup := bound[name]; dup {
			return nil, &BindingError{Prompt: p.name, Param: name, Reason: "got multiple values"}
		}
		bound[name] = v
	}
	for _, prm := range p.params {
		if _, ok := bound[prm.Name]; ok {
			continue
		}
		if prm.Default == nil {
			return nil, &BindingError{Prompt: p.name, Param: prm.Name, Reason: "required argument missing"}
		}
		bound[prm.Name] = prm.Default
	}
	return bound, nil
}

// render substitutes each placeholder with the string form of its bound
// value. Text outside placeholders is emitted verbatim.
func (p *Prompt) render(bound map[string]any) (string, error) {
	var unresolved string
	out := placeholderRe.ReplaceAllStringFunc(p.template, func(m string) string {
		name := placeholderRe.FindStringSubmatch(m)[1]
		v, ok := bound[name]
		if !ok {
			if unresolved == "" {
				unresolved = name
			}
			return m
		}
		return fmt.Sprintf("%v", v)
	})
	if unresolved != "" {
		return "", &TemplateError{Prompt: p.name, Placeholder: unresolved}
	}
	return out, nil
}

// resolve produces the boundCall for one invocation: bound arguments,
// rendered prompt and cache key. Purely computational, no side effects.
func (p *Prompt) resolve(args []any, named map[string]any, schemaName string) (*boundCall, error) {
	bound, err := p.bind(args, named)
	if err != nil {
		return nil, err
	}
	rendered, err := p.render(bound)
	if err != nil {
		return nil, err
	}
	key, err := cacheKey(p.template, bound, schemaName)
	if err != nil {
		return nil, err
	}
	return &boundCall{args: bound, prompt: rendered, cacheKey: key}, nil
}

// cacheKey hashes (raw template, canonical JSON of the bound arguments,
// declared result type name or ""). encoding/json writes map keys sorted,
// so equal bindings always produce equal keys.
func cacheKey(template string, bound map[string]any, schemaName string) (string, error) {
	argsJSON, err := json.Marshal(bound)
	if err != nil {
		return "", fmt.Errorf("smartfn: marshal args for cache key: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(template))
	h.Write(argsJSON)
	h.Write([]byte(schemaName))
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
