package pipeline

import (
	"context"
	"time"

	"postsmith/internal/llm"
	"postsmith/internal/postprocess"
	"postsmith/internal/prompt"
)

// Completer abstracts the model router so tests can script agent answers.
type Completer interface {
	Complete(ctx context.Context, task llm.TaskType, req llm.Request) (*llm.Result, error)
}

// agentProfile maps a role to its routing task type and sampling
// temperature. The numbers follow the behavior the agents were tuned with:
// strategist and critic run cool, the copywriter runs hot.
type agentProfile struct {
	task        llm.TaskType
	temperature float64
}

var agentProfiles = map[prompt.Role]agentProfile{
	prompt.RoleStrategist:    {task: llm.TaskStrategy, temperature: 0.5},
	prompt.RoleCopywriter:    {task: llm.TaskCreative, temperature: 0.8},
	prompt.RoleCritic:        {task: llm.TaskCritique, temperature: 0.3},
	prompt.RoleEditor:        {task: llm.TaskEditing, temperature: 0.6},
	prompt.RoleBrandGuardian: {task: llm.TaskCritique, temperature: 0.3},
}

// StageLog records one agent invocation for run reporting.
type StageLog struct {
	Stage    Stage         `json:"stage"`
	Agent    string        `json:"agent"`
	Message  string        `json:"message"`
	Model    string        `json:"model,omitempty"`
	Duration time.Duration `json:"duration"`
}

// callAgent runs a single agent under the configured stage timeout and
// cleans the model output. Stage invocations are pure functions of their
// inputs; all state lives in the orchestrator's run loop.
func (o *Orchestrator) callAgent(ctx context.Context, role prompt.Role, pctx prompt.Context) (string, string, error) {
	profile := agentProfiles[role]

	stageCtx, cancel := context.WithTimeout(ctx, o.cfg.StageTimeout)
	defer cancel()

	res, err := o.completer.Complete(stageCtx, profile.task, llm.Request{
		System:      prompt.BuildSystem(role, pctx),
		User:        prompt.BuildUser(role, pctx),
		Temperature: profile.temperature,
	})
	if err != nil {
		return "", "", err
	}
	return postprocess.Clean(res.Content), res.Model, nil
}
