package smartfn

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartfn.yaml")
	data := `
provider: google
model: gemini-2.5-flash
google_api_key: gsk-test
timeout: 30s
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Provider != ProviderGoogle {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.GoogleAPIKey != "gsk-test" {
		t.Errorf("GoogleAPIKey = %q", cfg.GoogleAPIKey)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
}

func TestLoadConfig_DefaultProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "smartfn.yaml")
	if err := os.WriteFile(path, []byte("model: gpt-4o-mini\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("default Provider = %q, want openai", cfg.Provider)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestConfig_ModelSelection(t *testing.T) {
	cfg := Config{Provider: ProviderGoogle, DefaultModelGoogle: "gemini-2.5-flash"}
	if cfg.model() != "gemini-2.5-flash" {
		t.Errorf("model() = %q", cfg.model())
	}

	cfg.Model = "override"
	if cfg.model() != "override" {
		t.Errorf("model() = %q, explicit model must win", cfg.model())
	}

	cfg = Config{Provider: ProviderOpenAI, DefaultModelOpenAI: "gpt-4o-mini"}
	if cfg.model() != "gpt-4o-mini" {
		t.Errorf("model() = %q", cfg.model())
	}
}
