package smartfn

import "encoding/json"

// Provider identifies which backend to use. No auto-detection in this step.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGoogle Provider = "google"
)

// Param declares one prompt parameter. A nil Default means the parameter is
// required and the call fails with a BindingError when it is not supplied.
type Param struct {
	Name    string
	Default any
}

// Required declares a parameter with no default value.
func Required(name string) Param {
	return Param{Name: name}
}

// Optional declares a parameter with a default value applied when the call
// does not supply one.
func Optional(name string, def any) Param {
	return Param{Name: name, Default: def}
}

// DebugInfo carries the diagnostics attached to a Result when the backend
// runs in debug mode. Field names mirror the wire envelope.
type DebugInfo struct {
	// Prompt is the exact rendered template sent to the provider.
	Prompt string `json:"prompt"`
	// Kwargs is the bound parameter-name -> value mapping of the call.
	Kwargs map[string]any `json:"kwargs"`
	// System is the system instruction configured on the backend, if any.
	System string `json:"system"`
}

// Result is a provider-agnostic result of one invocation.
type Result struct {
	// Primary text content. For schema-constrained calls this is the raw
	// JSON document the provider returned.
	Text string

	// If a schema was declared and the provider returned a structured
	// object, JSON contains the parsed object.
	JSON map[string]any

	// Token usage, if available. Cache hits report no usage.
	PromptTokens     *int
	CompletionTokens *int
	TotalTokens      *int

	// Debug is non-nil when the backend was built with WithDebug(true).
	Debug *DebugInfo

	// Cached reports whether the result was served from the cache without
	// contacting the provider.
	Cached bool
}

// TypedResult wraps a Result with the value coerced into the declared Go type.
type TypedResult[T any] struct {
	Result

	// Value is the schema-validated structured value.
	Value T
}

// rawJSONSchema is a thin json.Marshaler wrapper to pass generic schemas
// into providers that take custom types implementing MarshalJSON.
type rawJSONSchema struct {
	m map[string]any
}

func (r rawJSONSchema) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.m)
}
