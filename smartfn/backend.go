package smartfn

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Backend holds a provider reference and the fixed invocation options shared
// by every prompt wrapped against it: system instruction, response cache,
// debug mode and pass-through request parameters.
type Backend struct {
	cfg    Config
	system string
	cache  Cache
	debug  bool

	temperature     *float32
	maxOutputTokens *int
	extra           map[string]any

	mu sync.Mutex
	pc providerClient // lazily init
}

// New creates a Backend with the given config.
// If DetectEnv is true, it pulls missing API keys from environment variables.
func New(cfg Config) *Backend {
	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	if cfg.DetectEnv {
		if cfg.OpenAIAPIKey == "" {
			cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
		}
		if cfg.GoogleAPIKey == "" {
			cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
		}
	}
	return &Backend{cfg: cfg}
}

// WithSystem sets the system instruction sent on every call.
func (b *Backend) WithSystem(system string) *Backend {
	b.system = system
	return b
}

// WithCache attaches a response cache consulted before every provider call.
func (b *Backend) WithCache(c Cache) *Backend {
	b.cache = c
	return b
}

// WithDebug attaches a DebugInfo envelope to every result.
func (b *Backend) WithDebug(debug bool) *Backend {
	b.debug = debug
	return b
}

// WithTemperature sets the sampling temperature for every call.
func (b *Backend) WithTemperature(t float32) *Backend {
	b.temperature = &t
	return b
}

// WithMaxOutputTokens caps the completion length for every call.
func (b *Backend) WithMaxOutputTokens(n int) *Backend {
	b.maxOutputTokens = &n
	return b
}

// WithParams sets fixed pass-through request parameters forwarded to the
// provider on every call (e.g. "top_p", "seed", "stop"). A key the provider
// does not understand surfaces as a ConfigurationError on the first call.
func (b *Backend) WithParams(params map[string]any) *Backend {
	b.extra = params
	return b
}

func (b *Backend) ensureProvider() (providerClient, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pc != nil {
		return b.pc, nil
	}
	var (
		pc  providerClient
		err error
	)
	switch b.cfg.Provider {
	case ProviderOpenAI:
		pc, err = newOpenAIProvider(b.cfg)
	case ProviderGoogle:
		pc, err = newGoogleProvider(b.cfg)
	default:
		return nil, fmt.Errorf("smartfn: unknown provider %q", b.cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	b.pc = pc
	return pc, nil
}

// invoke runs the shared pipeline for one resolved call: cache probe,
// provider round trip, coercion, cache store. Transport errors pass through
// unchanged; nothing is retried.
func (b *Backend) invoke(ctx context.Context, bc *boundCall, schema *Schema) (Result, error) {
	if schema != nil && !schema.object() {
		return Result{}, &ConfigurationError{
			Reason: fmt.Sprintf("result type %q is not schema-capable: schema must describe a JSON object", schema.Name),
		}
	}

	if b.cache != nil {
		if v, ok := b.cache.Get(bc.cacheKey); ok {
			res := Result{Text: v, Cached: true}
			if schema != nil {
				// Stored values are already coerced; re-parse for the JSON view.
				var m map[string]any
				if json.Unmarshal([]byte(v), &m) == nil {
					res.JSON = m
				}
			}
			return res, nil
		}
	}

	model := b.cfg.model()
	if model == "" {
		return Result{}, &ConfigurationError{Reason: "model must be specified"}
	}

	pc, err := b.ensureProvider()
	if err != nil {
		return Result{}, err
	}

	gr, err := pc.generate(ctx, generatePlan{
		Model:           model,
		System:          b.system,
		Prompt:          bc.prompt,
		Temperature:     b.temperature,
		MaxOutputTokens: b.maxOutputTokens,
		Schema:          schema,
		Extra:           b.extra,
	})
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Text:             gr.Text,
		PromptTokens:     gr.PromptTokens,
		CompletionTokens: gr.CompletionTokens,
		TotalTokens:      gr.TotalTokens,
	}
	if schema != nil {
		if err := schema.validate(gr.Text); err != nil {
			return Result{}, &SchemaCoercionError{Schema: schema.Name, Raw: gr.Text, Cause: err}
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(gr.Text), &m); err != nil {
			return Result{}, &SchemaCoercionError{Schema: schema.Name, Raw: gr.Text, Cause: err}
		}
		res.JSON = m
	}

	// Values reach the cache only after successful coercion.
	if b.cache != nil {
		b.cache.Set(bc.cacheKey, res.Text)
	}

	if b.debug {
		res.Debug = &DebugInfo{Prompt: bc.prompt, Kwargs: bc.args, System: b.system}
	}
	return res, nil
}
