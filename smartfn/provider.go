package smartfn

import (
	"context"
	"fmt"
)

// providerClient is the internal interface each backend implements.
type providerClient interface {
	// generate executes exactly one prompt/response round trip.
	generate(ctx context.Context, plan generatePlan) (generateResult, error)
}

// generatePlan is a normalized, provider-agnostic instruction set produced
// by the Backend pipeline for one call.
type generatePlan struct {
	Model  string
	System string
	Prompt string

	// Options
	Temperature     *float32
	MaxOutputTokens *int

	// Schema, when non-nil, requests schema-constrained JSON output.
	Schema *Schema

	// Extra carries fixed pass-through request parameters configured on the
	// backend. Providers map the keys they understand and reject the rest.
	Extra map[string]any
}

// generateResult is the provider-agnostic result of one call execution.
type generateResult struct {
	Text string

	PromptTokens     *int
	CompletionTokens *int
	TotalTokens      *int
}

func floatParam(v any) (float32, bool) {
	switch t := v.(type) {
	case float32:
		return t, true
	case float64:
		return float32(t), true
	case int:
		return float32(t), true
	}
	return 0, false
}

func intParam(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return int(t), true
	case float64:
		return int(t), true
	}
	return 0, false
}

func stringsParam(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case string:
		return []string{t}, true
	}
	return nil, false
}

func unknownParam(key string) error {
	return &ConfigurationError{Reason: fmt.Sprintf("unsupported request parameter %q", key)}
}

func badParam(key string, v any) error {
	return &ConfigurationError{Reason: fmt.Sprintf("request parameter %q: unsupported value %v", key, v)}
}
