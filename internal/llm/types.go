// Package llm abstracts the external generative text providers behind a
// single Client interface and routes each agent task to the best available
// model with automatic fallback.
package llm

import (
	"context"
	"time"
)

// TaskType groups agent work by the model capability it needs.
type TaskType string

const (
	TaskStrategy TaskType = "strategy" // needs reasoning
	TaskCreative TaskType = "creative" // needs creativity
	TaskEditing  TaskType = "editing"  // fast, simple
	TaskCritique TaskType = "critique" // analytical
	TaskQuick    TaskType = "quick"    // simple one-shot tasks
)

// Request is one completion call: a system prompt, a user prompt and
// sampling parameters.
type Request struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int64
}

// Result is the standardized provider response.
type Result struct {
	Content    string
	Model      string
	Provider   string
	TokensUsed int64
	Latency    time.Duration
}

// Client is a single LLM provider. Implementations must be safe for
// concurrent use.
type Client interface {
	Name() string
	Complete(ctx context.Context, model string, req Request) (*Result, error)
}

// Config carries provider connection settings.
type Config struct {
	Provider string        `mapstructure:"provider" json:"provider" yaml:"provider"`
	APIKey   string        `mapstructure:"api_key" json:"api_key" yaml:"api_key"`
	BaseURL  string        `mapstructure:"base_url" json:"base_url" yaml:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout" json:"timeout" yaml:"timeout"`
}

// ModelConfig describes one routable model.
type ModelConfig struct {
	Provider    string
	ModelID     string
	DisplayName string
	TaskTypes   []TaskType
	Temperature float64 // default when the request does not set one
	MaxTokens   int64
	Priority    int // lower wins
}

// Serves reports whether the model is configured for the given task type.
func (m ModelConfig) Serves(task TaskType) bool {
	for _, t := range m.TaskTypes {
		if t == task {
			return true
		}
	}
	return false
}
