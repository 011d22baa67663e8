package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultMaxAttempts    = 3
	defaultRetryDelay     = 500 * time.Millisecond
	errorCooldown         = 30 * time.Second
	rateLimitCooldown     = 60 * time.Second
	defaultRouterMaxToken = 2048
)

// providerState tracks availability of one provider for cooldown-based
// fallback.
type providerState struct {
	cooldownUntil time.Time
	lastError     string
	requests      int
}

func (s *providerState) available(now time.Time) bool {
	return now.After(s.cooldownUntil)
}

// Router selects the best available model for a task and falls back across
// models when a provider errors or rate-limits. Safe for concurrent use;
// concurrent pipeline runs share one Router.
type Router struct {
	mu      sync.Mutex
	clients map[string]Client
	states  map[string]*providerState
	models  []ModelConfig

	maxAttempts int
	retryDelay  time.Duration
}

// NewRouter creates a router over the given clients and model table.
func NewRouter(clients []Client, models []ModelConfig) *Router {
	cm := make(map[string]Client, len(clients))
	sm := make(map[string]*providerState, len(clients))
	for _, c := range clients {
		cm[c.Name()] = c
		sm[c.Name()] = &providerState{}
	}
	return &Router{
		clients:     cm,
		states:      sm,
		models:      models,
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
	}
}

// DefaultModels is the routing table used when the config file does not
// override it. Groq models are primary; OpenAI is the paid fallback.
func DefaultModels() []ModelConfig {
	return []ModelConfig{
		{
			Provider:    "groq",
			ModelID:     "llama-3.3-70b-versatile",
			DisplayName: "Llama 3.3 70B",
			TaskTypes:   []TaskType{TaskStrategy, TaskCreative, TaskCritique},
			Temperature: 0.7,
			MaxTokens:   defaultRouterMaxToken,
			Priority:    1,
		},
		{
			Provider:    "groq",
			ModelID:     "llama-3.1-8b-instant",
			DisplayName: "Llama 3.1 8B (fast)",
			TaskTypes:   []TaskType{TaskEditing, TaskQuick},
			Temperature: 0.5,
			MaxTokens:   defaultRouterMaxToken,
			Priority:    1,
		},
		{
			Provider:    "openai",
			ModelID:     "gpt-4o-mini",
			DisplayName: "GPT-4o Mini",
			TaskTypes:   []TaskType{TaskStrategy, TaskCreative, TaskCritique, TaskEditing, TaskQuick},
			Temperature: 0.7,
			MaxTokens:   defaultRouterMaxToken,
			Priority:    10,
		},
		{
			Provider:    "ollama",
			ModelID:     "llama3.1:8b",
			DisplayName: "Llama 3.1 8B (local)",
			TaskTypes:   []TaskType{TaskStrategy, TaskCreative, TaskCritique, TaskEditing, TaskQuick},
			Temperature: 0.7,
			MaxTokens:   defaultRouterMaxToken,
			Priority:    20,
		},
	}
}

// availableModels returns configured models whose provider is registered and
// not cooling down, sorted by priority. Pass task == "" to ignore task
// filtering.
func (r *Router) availableModels(task TaskType, now time.Time) []ModelConfig {
	var out []ModelConfig
	for _, m := range r.models {
		state, ok := r.states[m.Provider]
		if !ok || !state.available(now) {
			continue
		}
		if task != "" && !m.Serves(task) {
			continue
		}
		out = append(out, m)
	}
	// insertion sort by priority; the table is small
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Priority < out[j-1].Priority; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// selectModel picks the best model for a task, falling back to any model
// when none is dedicated to the task.
func (r *Router) selectModel(task TaskType, tried map[string]bool, now time.Time) (ModelConfig, bool) {
	candidates := r.availableModels(task, now)
	if len(candidates) == 0 {
		candidates = r.availableModels("", now)
	}
	for _, m := range candidates {
		if !tried[m.Provider+":"+m.ModelID] {
			return m, true
		}
	}
	return ModelConfig{}, false
}

func (r *Router) markFailure(provider, errMsg string, now time.Time) {
	state, ok := r.states[provider]
	if !ok {
		return
	}
	state.lastError = errMsg
	lower := strings.ToLower(errMsg)
	if strings.Contains(lower, "rate") || strings.Contains(lower, "429") || strings.Contains(lower, "quota") {
		state.cooldownUntil = now.Add(rateLimitCooldown)
		zap.S().Warnw("provider rate limited", "provider", provider, "cooldown", rateLimitCooldown)
	} else {
		state.cooldownUntil = now.Add(errorCooldown)
	}
}

// Complete runs the request against the best model for the task, retrying
// across models on failure. When req.Temperature or req.MaxTokens are zero
// the selected model's defaults apply.
func (r *Router) Complete(ctx context.Context, task TaskType, req Request) (*Result, error) {
	tried := make(map[string]bool)
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		r.mu.Lock()
		model, ok := r.selectModel(task, tried, time.Now())
		r.mu.Unlock()
		if !ok {
			break
		}
		tried[model.Provider+":"+model.ModelID] = true

		client := r.clients[model.Provider]

		callReq := req
		if callReq.Temperature == 0 {
			callReq.Temperature = model.Temperature
		}
		if callReq.MaxTokens == 0 {
			callReq.MaxTokens = model.MaxTokens
		}

		zap.S().Debugw("calling model", "model", model.DisplayName, "task", task, "attempt", attempt+1)

		res, err := client.Complete(ctx, model.ModelID, callReq)
		if err == nil {
			r.mu.Lock()
			r.states[model.Provider].requests++
			r.mu.Unlock()
			return res, nil
		}

		lastErr = err
		r.mu.Lock()
		r.markFailure(model.Provider, err.Error(), time.Now())
		r.mu.Unlock()
		zap.S().Warnw("model call failed", "model", model.DisplayName, "error", err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.retryDelay):
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("all model attempts failed: %w", lastErr)
	}
	return nil, fmt.Errorf("no available models for task %s", task)
}
