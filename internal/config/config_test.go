package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pipeline.MaxRevisions != 2 {
		t.Errorf("expected default max revisions 2, got %d", cfg.Pipeline.MaxRevisions)
	}
	if cfg.Pipeline.QualityThreshold != 7.0 {
		t.Errorf("expected default threshold 7.0, got %f", cfg.Pipeline.QualityThreshold)
	}
	if cfg.Providers.Ollama.URL == "" {
		t.Error("expected default ollama url")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
pipeline:
  max_revisions: 4
  stage_timeout: 30s
brand:
  default_profile: acme
providers:
  ollama:
    url: http://models.internal:11434
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Pipeline.MaxRevisions != 4 {
		t.Errorf("expected max revisions 4, got %d", cfg.Pipeline.MaxRevisions)
	}
	if cfg.Pipeline.StageTimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %s", cfg.Pipeline.StageTimeout)
	}
	if cfg.Brand.DefaultProfile != "acme" {
		t.Errorf("expected profile acme, got %q", cfg.Brand.DefaultProfile)
	}
	if cfg.Providers.Ollama.URL != "http://models.internal:11434" {
		t.Errorf("ollama url not applied: %q", cfg.Providers.Ollama.URL)
	}
	// Values the file does not mention keep their defaults.
	if cfg.Pipeline.QualityThreshold != 7.0 {
		t.Errorf("unset value lost its default: %f", cfg.Pipeline.QualityThreshold)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("pipeline: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoad_EnvAPIKey(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Providers.Groq.APIKey != "gsk_test" {
		t.Errorf("env key not applied: %q", cfg.Providers.Groq.APIKey)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Providers.Ollama.URL = ""
	if errs := cfg.Validate(); len(errs) == 0 {
		t.Error("expected error with no providers configured")
	}

	cfg = Default()
	cfg.Providers.Groq.APIKey = "gsk_test"
	cfg.Pipeline.QualityThreshold = 15
	errs := cfg.Validate()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error, got %v", errs)
	}

	cfg.Pipeline.QualityThreshold = 7
	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("expected valid config, got %v", errs)
	}
}
