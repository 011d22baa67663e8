package pipeline

import (
	"time"

	"github.com/google/uuid"

	"postsmith/internal/critique"
)

// Stage names the pipeline step that produced an artifact.
type Stage string

const (
	StageBrief     Stage = "brief"
	StageStrategy  Stage = "strategy"
	StageDraft     Stage = "draft"
	StageCritiqued Stage = "critiqued"
	StageRevision  Stage = "revision"
	StageFinal     Stage = "final"
)

// DraftArtifact is an immutable snapshot of content at one pipeline stage.
// Stages never mutate an artifact in place; each produces a new one pointing
// at its predecessor, so a completed run carries its full revision chain.
type DraftArtifact struct {
	ID        string           `json:"id"`
	Stage     Stage            `json:"stage"`
	Content   string           `json:"content"`
	Critique  *critique.Result `json:"critique,omitempty"`
	Previous  *DraftArtifact   `json:"-"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewArtifact creates an artifact for one stage with its predecessor link.
func NewArtifact(stage Stage, content string, prev *DraftArtifact) *DraftArtifact {
	return &DraftArtifact{
		ID:        uuid.NewString(),
		Stage:     stage,
		Content:   content,
		Previous:  prev,
		CreatedAt: time.Now(),
	}
}

// WithCritique returns a new critiqued artifact carrying the same content,
// with the receiver as its predecessor.
func (a *DraftArtifact) WithCritique(c *critique.Result) *DraftArtifact {
	next := NewArtifact(StageCritiqued, a.Content, a)
	next.Critique = c
	return next
}

// Chain returns the artifact and all its predecessors, newest first, ending
// at the original brief.
func (a *DraftArtifact) Chain() []*DraftArtifact {
	var chain []*DraftArtifact
	for cur := a; cur != nil; cur = cur.Previous {
		chain = append(chain, cur)
	}
	return chain
}

// Revisions counts the editor passes in the artifact's chain.
func (a *DraftArtifact) Revisions() int {
	n := 0
	for cur := a; cur != nil; cur = cur.Previous {
		if cur.Stage == StageRevision {
			n++
		}
	}
	return n
}
