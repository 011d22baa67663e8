/*
Copyright © 2026 Postsmith Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"postsmith/internal/config"
	"postsmith/internal/llm"
	"postsmith/internal/pipeline"
	"postsmith/internal/store"
	"postsmith/internal/validator"
)

// loadConfig reads and validates the config file named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "config: %v\n", e)
		}
		return nil, fmt.Errorf("invalid configuration")
	}
	return cfg, nil
}

// buildRouter registers a client per configured provider. At least one
// provider must be configured; Validate already enforces that.
func buildRouter(cfg *config.Config) (*llm.Router, error) {
	var clients []llm.Client

	if cfg.Providers.Groq.APIKey != "" {
		c, err := llm.NewOpenAIClient("groq", cfg.Providers.Groq.APIKey, cfg.Providers.Groq.BaseURL)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if cfg.Providers.OpenAI.APIKey != "" {
		c, err := llm.NewOpenAIClient("openai", cfg.Providers.OpenAI.APIKey, cfg.Providers.OpenAI.BaseURL)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if cfg.Providers.Ollama.URL != "" {
		clients = append(clients, llm.NewOllamaClient(cfg.Providers.Ollama.URL))
	}
	if len(clients) == 0 {
		return nil, fmt.Errorf("no model providers configured")
	}

	return llm.NewRouter(clients, llm.DefaultModels()), nil
}

// buildOrchestrator wires the router and language validator under the
// configured pipeline bounds.
func buildOrchestrator(cfg *config.Config, router *llm.Router) *pipeline.Orchestrator {
	return pipeline.New(router, validator.New(), pipeline.Config{
		MaxRevisions:     cfg.Pipeline.MaxRevisions,
		QualityThreshold: cfg.Pipeline.QualityThreshold,
		StageTimeout:     cfg.Pipeline.StageTimeout,
	})
}

func openStore(cfg *config.Config) (*store.Store, error) {
	if dir := filepath.Dir(cfg.Store.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return store.New(cfg.Store.Path)
}

func writeOutput(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
