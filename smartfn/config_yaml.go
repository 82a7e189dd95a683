package smartfn

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors Config for YAML decoding. Timeout is a duration string
// ("30s") since yaml does not decode time.Duration natively.
type fileConfig struct {
	Provider           string `yaml:"provider"`
	Model              string `yaml:"model"`
	DefaultModelOpenAI string `yaml:"default_model_openai"`
	DefaultModelGoogle string `yaml:"default_model_google"`
	OpenAIAPIKey       string `yaml:"openai_api_key"`
	OpenAIBaseURL      string `yaml:"openai_base_url"`
	OpenAIOrgID        string `yaml:"openai_org_id"`
	GoogleAPIKey       string `yaml:"google_api_key"`
	GoogleBaseURL      string `yaml:"google_base_url"`
	Timeout            string `yaml:"timeout"`
	DetectEnv          bool   `yaml:"detect_env"`
}

// LoadConfig reads a Config from a YAML file. Missing API keys can still be
// filled from the environment by setting detect_env: true in the file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("smartfn: read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("smartfn: parse config: %w", err)
	}

	cfg := Config{
		Provider:           Provider(fc.Provider),
		Model:              fc.Model,
		DefaultModelOpenAI: fc.DefaultModelOpenAI,
		DefaultModelGoogle: fc.DefaultModelGoogle,
		OpenAIAPIKey:       fc.OpenAIAPIKey,
		OpenAIBaseURL:      fc.OpenAIBaseURL,
		OpenAIOrgID:        fc.OpenAIOrgID,
		GoogleAPIKey:       fc.GoogleAPIKey,
		GoogleBaseURL:      fc.GoogleBaseURL,
		DetectEnv:          fc.DetectEnv,
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("smartfn: parse config timeout: %w", err)
		}
		cfg.Timeout = d
	}
	if cfg.Provider == "" {
		cfg.Provider = ProviderOpenAI
	}
	return cfg, nil
}
