package pipeline

import (
	"fmt"

	"postsmith/internal/critique"
)

// StageError reports an external failure (API error, timeout) during one
// stage invocation, with enough context to resume manually.
type StageError struct {
	Stage    Stage
	Revision int
	Err      error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s failed at revision %d: %v", e.Stage, e.Revision, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// ConvergenceError reports that the critique/revision loop exhausted its
// bound without producing a passing draft. It is not retried automatically.
type ConvergenceError struct {
	Attempts int
	Critique *critique.Result
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("could not converge after %d revision attempts (last score %.1f)", e.Attempts, e.Critique.Score)
}

// ValidationError reports a Brand Guardian rejection that no further
// automated revision can remedy. The guardian's judgment is attached.
type ValidationError struct {
	Critique *critique.Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("brand validation failed with %d issue(s)", len(e.Critique.Issues))
}
