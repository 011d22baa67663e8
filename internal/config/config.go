// Package config loads the application configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Providers ProvidersConfig `yaml:"providers"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Store     StoreConfig     `yaml:"store"`
	Brand     BrandConfig     `yaml:"brand"`
	Translate TranslateConfig `yaml:"translate"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ProvidersConfig struct {
	OpenAI OpenAIConfig `yaml:"openai"`
	Groq   GroqConfig   `yaml:"groq"`
	Ollama OllamaConfig `yaml:"ollama"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type GroqConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type OllamaConfig struct {
	URL string `yaml:"url"`
}

type PipelineConfig struct {
	MaxRevisions     int           `yaml:"max_revisions"`
	QualityThreshold float64       `yaml:"quality_threshold"`
	StageTimeout     time.Duration `yaml:"stage_timeout"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type BrandConfig struct {
	DefaultProfile string `yaml:"default_profile"`
}

type TranslateConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Providers: ProvidersConfig{
			Groq:   GroqConfig{BaseURL: "https://api.groq.com/openai/v1"},
			Ollama: OllamaConfig{URL: "http://localhost:11434"},
		},
		Pipeline: PipelineConfig{
			MaxRevisions:     2,
			QualityThreshold: 7.0,
			StageTimeout:     90 * time.Second,
		},
		Store: StoreConfig{
			Path: defaultStorePath(),
		},
		Brand: BrandConfig{
			DefaultProfile: "default",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "postsmith.db"
	}
	return filepath.Join(home, ".postsmith", "postsmith.db")
}

// Load reads the config file at path, falling back to defaults when it does
// not exist. PROVIDERS_OPENAI_API_KEY style environment variables override
// file values; the bare OPENAI_API_KEY and GROQ_API_KEY names work too.
func Load(path string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			dir, file := filepath.Split(path)
			ext := filepath.Ext(file)
			v.AddConfigPath(dir)
			v.SetConfigName(strings.TrimSuffix(file, ext))
			v.SetConfigType(strings.TrimPrefix(ext, "."))
			if err := v.ReadInConfig(); err != nil {
				return nil, errors.Wrap(err, "failed to parse config file")
			}
			if err := v.Unmarshal(cfg, func(dc *mapstructure.DecoderConfig) {
				dc.TagName = "yaml"
			}); err != nil {
				return nil, errors.Wrap(err, "failed to decode config")
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.Providers.OpenAI.APIKey == "" {
		cfg.Providers.OpenAI.APIKey = key
	}
	if key := os.Getenv("GROQ_API_KEY"); key != "" && cfg.Providers.Groq.APIKey == "" {
		cfg.Providers.Groq.APIKey = key
	}

	return cfg, nil
}

func (c *Config) Validate() []error {
	var errs []error

	if c.Providers.OpenAI.APIKey == "" && c.Providers.Groq.APIKey == "" && c.Providers.Ollama.URL == "" {
		errs = append(errs, errors.New("no model provider configured: set an OpenAI or Groq API key, or an Ollama URL"))
	}
	if c.Pipeline.MaxRevisions < 0 {
		errs = append(errs, errors.New("pipeline.max_revisions must not be negative"))
	}
	if c.Pipeline.QualityThreshold < 0 || c.Pipeline.QualityThreshold > 10 {
		errs = append(errs, errors.New("pipeline.quality_threshold must be between 0 and 10"))
	}
	if c.Pipeline.StageTimeout < 0 {
		errs = append(errs, errors.New("pipeline.stage_timeout must not be negative"))
	}
	if c.Store.Path == "" {
		errs = append(errs, errors.New("store.path must not be empty"))
	}
	return errs
}
