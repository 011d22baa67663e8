// Package pipeline runs the fixed content-refinement sequence:
// Strategist → Copywriter → (Critic → Editor)* → Brand Guardian.
//
// The critique/revision loop is an explicit bounded state machine, so
// termination does not depend on model behavior: a draft either passes the
// critic and the guardian within the revision budget, or the run ends with
// a ConvergenceError or ValidationError carrying the last judgment.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"postsmith/internal"
	"postsmith/internal/brand"
	"postsmith/internal/critique"
	"postsmith/internal/guardian"
	"postsmith/internal/prompt"
)

const (
	DefaultMaxRevisions     = 2
	DefaultQualityThreshold = 7.0
	DefaultStageTimeout     = 90 * time.Second
)

// Config bounds one pipeline run.
type Config struct {
	MaxRevisions     int
	QualityThreshold float64
	StageTimeout     time.Duration
	SkipBrandCheck   bool
	SkipValidation   bool
}

func (c Config) withDefaults() Config {
	if c.MaxRevisions <= 0 {
		c.MaxRevisions = DefaultMaxRevisions
	}
	if c.QualityThreshold <= 0 {
		c.QualityThreshold = DefaultQualityThreshold
	}
	if c.StageTimeout <= 0 {
		c.StageTimeout = DefaultStageTimeout
	}
	return c
}

// LanguageChecker verifies generated content is in the requested language.
type LanguageChecker interface {
	IsValid(content, lang string) (bool, error)
}

// Orchestrator executes pipeline runs. Safe for concurrent use: runs share
// only the completer (itself concurrency-safe) and read-only config.
type Orchestrator struct {
	completer Completer
	checker   LanguageChecker
	cfg       Config
}

// New creates an Orchestrator. checker may be nil to skip language
// validation.
func New(completer Completer, checker LanguageChecker, cfg Config) *Orchestrator {
	return &Orchestrator{
		completer: completer,
		checker:   checker,
		cfg:       cfg.withDefaults(),
	}
}

// RunResult is the outcome of one pipeline run. On failure Final is nil and
// Logs still records every stage that executed.
type RunResult struct {
	Request    internal.ContentRequest `json:"request"`
	Final      *DraftArtifact          `json:"final,omitempty"`
	Critique   *critique.Result        `json:"critique,omitempty"`
	Iterations int                     `json:"iterations"`
	Duration   time.Duration           `json:"duration"`
	Logs       []StageLog              `json:"logs"`
}

type runState int

const (
	stateStrategizing runState = iota
	stateDrafting
	stateCritiquing
	stateRevising
	stateBrandCheck
	stateAccepted
	stateFailed
)

// Run executes the full pipeline for one request. The profile is cloned at
// entry, so edits made elsewhere while the run is in flight cannot affect
// it. learning is the feedback context block, may be empty.
func (o *Orchestrator) Run(ctx context.Context, req internal.ContentRequest, profile *brand.Profile, learning string) (*RunResult, error) {
	profile = profile.Clone()
	start := time.Now()

	result := &RunResult{Request: req}
	log := zap.S().With("request", req.ID, "platform", req.Platform)

	pctx := prompt.Context{
		Topic:           req.Topic,
		Platform:        req.Platform,
		Goal:            req.Goal,
		Style:           req.Style,
		Language:        req.Language,
		BrandContext:    profile.PromptContext(),
		LearningContext: learning,
	}

	brief := NewArtifact(StageBrief, req.Topic, nil)
	var current *DraftArtifact
	var lastCritique *critique.Result
	var pendingCritique string
	revisions := 0

	fail := func(stage Stage, err error) (*RunResult, error) {
		result.Duration = time.Since(start)
		result.Iterations = revisions
		return result, &StageError{Stage: stage, Revision: revisions, Err: err}
	}

	state := stateStrategizing
	for state != stateAccepted && state != stateFailed {
		switch state {

		case stateStrategizing:
			content, model, err := o.timedCall(prompt.RoleStrategist, StageStrategy, ctx, pctx, result)
			if err != nil {
				return fail(StageStrategy, err)
			}
			if content == "" {
				return fail(StageStrategy, fmt.Errorf("strategist produced no output"))
			}
			current = NewArtifact(StageStrategy, content, brief)
			log.Debugw("strategy ready", "model", model)
			state = stateDrafting

		case stateDrafting:
			pctx.PreviousOutput = current.Content
			content, _, err := o.timedCall(prompt.RoleCopywriter, StageDraft, ctx, pctx, result)
			if err != nil {
				return fail(StageDraft, err)
			}
			if content == "" {
				return fail(StageDraft, fmt.Errorf("copywriter produced no output"))
			}
			current = NewArtifact(StageDraft, content, current)
			state = stateCritiquing

		case stateCritiquing:
			cr, err := o.critiqueDraft(ctx, current, pctx, result)
			if err != nil {
				return fail(StageCritiqued, err)
			}
			current = current.WithCritique(cr)
			lastCritique = cr
			log.Infow("draft critiqued", "score", cr.Score, "pass", cr.Pass, "issues", len(cr.Issues))

			if cr.Pass {
				state = stateBrandCheck
				break
			}
			if revisions >= o.cfg.MaxRevisions {
				result.Critique = cr
				result.Duration = time.Since(start)
				result.Iterations = revisions
				return result, &ConvergenceError{Attempts: revisions, Critique: cr}
			}
			pendingCritique = cr.Raw
			state = stateRevising

		case stateRevising:
			pctx.PreviousOutput = current.Content
			pctx.Critique = pendingCritique
			content, _, err := o.timedCall(prompt.RoleEditor, StageRevision, ctx, pctx, result)
			pctx.Critique = ""
			if err != nil {
				return fail(StageRevision, err)
			}
			if content != "" {
				current = NewArtifact(StageRevision, content, current)
			}
			revisions++
			state = stateCritiquing

		case stateBrandCheck:
			if o.cfg.SkipBrandCheck {
				state = stateAccepted
				break
			}
			pctx.PreviousOutput = current.Content
			verdict, _, err := o.timedCall(prompt.RoleBrandGuardian, StageFinal, ctx, pctx, result)
			if err != nil {
				return fail(StageFinal, err)
			}
			check := guardian.Check(current.Content, verdict, profile)
			if check.Pass {
				log.Infow("brand check passed")
				state = stateAccepted
				break
			}
			log.Warnw("brand check rejected draft", "issues", len(check.Issues))
			if revisions >= o.cfg.MaxRevisions {
				result.Critique = check
				result.Duration = time.Since(start)
				result.Iterations = revisions
				return result, &ValidationError{Critique: check}
			}
			pendingCritique = formatBrandIssues(check)
			state = stateRevising
		}
	}

	final := NewArtifact(StageFinal, current.Content, current)
	final.Critique = lastCritique

	result.Final = final
	result.Critique = lastCritique
	result.Iterations = revisions
	result.Duration = time.Since(start)
	log.Infow("pipeline finished", "revisions", revisions, "duration", result.Duration)
	return result, nil
}

// critiqueDraft runs the deterministic language check first, then the critic
// agent. A language mismatch rejects without burning a model call.
func (o *Orchestrator) critiqueDraft(ctx context.Context, current *DraftArtifact, pctx prompt.Context, result *RunResult) (*critique.Result, error) {
	if o.checker != nil && !o.cfg.SkipValidation {
		if ok, err := o.checker.IsValid(current.Content, pctx.Language); !ok {
			reason := "content is not in the requested language"
			if err != nil {
				reason = err.Error()
			}
			return critique.Reject(reason, []critique.Issue{
				{Severity: critique.SeverityMajor, Description: reason + "; rewrite in " + pctx.Language},
			}), nil
		}
	}

	pctx.PreviousOutput = current.Content
	raw, _, err := o.timedCall(prompt.RoleCritic, StageCritiqued, ctx, pctx, result)
	if err != nil {
		return nil, err
	}
	return critique.Parse(raw, o.cfg.QualityThreshold), nil
}

// timedCall wraps callAgent with stage logging.
func (o *Orchestrator) timedCall(role prompt.Role, stage Stage, ctx context.Context, pctx prompt.Context, result *RunResult) (string, string, error) {
	start := time.Now()
	content, model, err := o.callAgent(ctx, role, pctx)
	entry := StageLog{
		Stage:    stage,
		Agent:    string(role),
		Model:    model,
		Duration: time.Since(start),
	}
	if err != nil {
		entry.Message = err.Error()
	} else {
		entry.Message = snippet(content, 100)
	}
	result.Logs = append(result.Logs, entry)
	return content, model, err
}

func formatBrandIssues(check *critique.Result) string {
	var sb strings.Builder
	sb.WriteString("BRAND ISSUES:\n")
	for _, issue := range check.Issues {
		fmt.Fprintf(&sb, "- %s\n", issue.Description)
	}
	return sb.String()
}

func snippet(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// RunQuick skips the refinement loop and returns a single copywriter pass.
// For simple cases where latency matters more than polish.
func (o *Orchestrator) RunQuick(ctx context.Context, req internal.ContentRequest, profile *brand.Profile, learning string) (*RunResult, error) {
	profile = profile.Clone()
	start := time.Now()

	result := &RunResult{Request: req}
	pctx := prompt.Context{
		Topic:           req.Topic,
		Platform:        req.Platform,
		Goal:            req.Goal,
		Style:           req.Style,
		Language:        req.Language,
		BrandContext:    profile.PromptContext(),
		LearningContext: learning,
	}

	content, _, err := o.timedCall(prompt.RoleCopywriter, StageDraft, ctx, pctx, result)
	result.Duration = time.Since(start)
	if err != nil {
		return result, &StageError{Stage: StageDraft, Err: err}
	}
	if content == "" {
		return result, &StageError{Stage: StageDraft, Err: fmt.Errorf("copywriter produced no output")}
	}

	brief := NewArtifact(StageBrief, req.Topic, nil)
	result.Final = NewArtifact(StageFinal, content, NewArtifact(StageDraft, content, brief))
	return result, nil
}

// Variations generates one quick draft per style. Styles beyond the
// requested count are ignored; a nil styles slice uses a default spread.
func (o *Orchestrator) Variations(ctx context.Context, req internal.ContentRequest, profile *brand.Profile, learning string, styles []internal.Style) ([]*RunResult, error) {
	if len(styles) == 0 {
		styles = []internal.Style{internal.StyleProfessional, internal.StyleCasual, internal.StyleControversial}
	}

	results := make([]*RunResult, 0, len(styles))
	for _, style := range styles {
		vr := req
		vr.Style = style
		res, err := o.RunQuick(ctx, vr, profile, learning)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Section prompts for targeted regeneration.
var sectionInstructions = map[string]string{
	"hook": "Rewrite ONLY the first paragraph (the hook). Make it grab harder.",
	"body": "Rewrite the middle of the post. Keep the hook and the CTA.",
	"cta":  "Rewrite ONLY the closing call to action. Make it stronger.",
}

// RegenerateSection rewrites one section (hook, body, cta) of an existing
// post, leaving the rest untouched.
func (o *Orchestrator) RegenerateSection(ctx context.Context, content, section string, platform internal.Platform, profile *brand.Profile, instruction string) (string, error) {
	extra, ok := sectionInstructions[section]
	if !ok {
		if instruction == "" {
			return "", fmt.Errorf("unknown section %q", section)
		}
		extra = instruction
	} else if instruction != "" {
		extra += "\n\nAdditional guidance: " + instruction
	}

	pctx := prompt.Context{
		Platform:       platform,
		BrandContext:   profile.PromptContext(),
		PreviousOutput: content,
		Extra:          extra,
	}

	out, _, err := o.callAgent(ctx, prompt.RoleEditor, pctx)
	if err != nil {
		return "", &StageError{Stage: StageRevision, Err: err}
	}
	return out, nil
}
