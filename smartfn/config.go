package smartfn

import (
	"net/http"
	"time"
)

// Config contains backend-wide configuration: provider selection, secrets
// and HTTP knobs. Per-call options live on the Backend builder instead.
type Config struct {
	// Provider selects the backend implementation. Defaults to ProviderOpenAI.
	Provider Provider

	// Model is the model identifier used for every call. If empty, the
	// per-provider default below applies.
	Model string

	// Default model per provider if Model is not set.
	DefaultModelOpenAI string
	DefaultModelGoogle string

	// OpenAI configuration.
	OpenAIAPIKey  string // falls back to env OPENAI_API_KEY if empty and DetectEnv is true
	OpenAIBaseURL string // optional; supports OpenAI-compatible endpoints
	OpenAIOrgID   string // optional

	// Google/GenAI configuration.
	GoogleAPIKey  string // falls back to env GOOGLE_API_KEY if empty and DetectEnv is true
	GoogleBaseURL string // optional custom endpoint

	// Shared client options.
	HTTPClient *http.Client
	Timeout    time.Duration

	// Auto-detection.
	DetectEnv bool // when true, pull missing API keys from environment
}

func (c Config) model() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Provider {
	case ProviderGoogle:
		return c.DefaultModelGoogle
	default:
		return c.DefaultModelOpenAI
	}
}
