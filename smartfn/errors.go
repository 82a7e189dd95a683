package smartfn

import "fmt"

// BindingError reports a call-time argument binding failure: a required
// parameter without a value, an unknown named argument, or too many
// positional arguments. It is raised before the provider is contacted.
type BindingError struct {
	Prompt string // prompt name
	Param  string // offending parameter, if identifiable
	Reason string
}

func (e *BindingError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("smartfn: binding %q: parameter %q: %s", e.Prompt, e.Param, e.Reason)
	}
	return fmt.Sprintf("smartfn: binding %q: %s", e.Prompt, e.Reason)
}

// TemplateError reports a template placeholder that references a parameter
// the prompt does not declare.
type TemplateError struct {
	Prompt      string
	Placeholder string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("smartfn: template %q: unresolved placeholder {{ %s }}", e.Prompt, e.Placeholder)
}

// ConfigurationError reports a backend or result-type misconfiguration.
// It surfaces on the first invocation, not at construction.
type ConfigurationError struct {
	Reason string
	Cause  error
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("smartfn: configuration: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("smartfn: configuration: %s", e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return e.Cause }

// SchemaCoercionError reports a provider response that does not parse or
// validate against the declared schema. Raw carries the unmodified response
// text for diagnosis.
type SchemaCoercionError struct {
	Schema string // schema name
	Raw    string // raw provider text
	Cause  error
}

func (e *SchemaCoercionError) Error() string {
	return fmt.Sprintf("smartfn: response does not conform to schema %q: %v (raw: %s)", e.Schema, e.Cause, e.Raw)
}

func (e *SchemaCoercionError) Unwrap() error { return e.Cause }
