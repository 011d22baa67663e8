package pipeline

import (
	"testing"

	"postsmith/internal/critique"
)

func TestArtifact_ChainEndsAtBrief(t *testing.T) {
	brief := NewArtifact(StageBrief, "topic", nil)
	strategy := NewArtifact(StageStrategy, "angle", brief)
	draft := NewArtifact(StageDraft, "post", strategy)

	chain := draft.Chain()

	if len(chain) != 3 {
		t.Fatalf("expected chain of 3, got %d", len(chain))
	}
	if chain[0] != draft {
		t.Error("chain must start at the newest artifact")
	}
	last := chain[len(chain)-1]
	if last.Stage != StageBrief || last.Content != "topic" {
		t.Errorf("chain must end at the brief, got %s %q", last.Stage, last.Content)
	}
}

func TestArtifact_WithCritiqueIsNewArtifact(t *testing.T) {
	draft := NewArtifact(StageDraft, "post", nil)
	cr := &critique.Result{Pass: false, Score: 4}

	critiqued := draft.WithCritique(cr)

	if critiqued == draft {
		t.Fatal("WithCritique must not return the receiver")
	}
	if draft.Critique != nil {
		t.Error("original artifact was mutated")
	}
	if critiqued.Critique != cr {
		t.Error("critique not attached")
	}
	if critiqued.Previous != draft {
		t.Error("critiqued artifact must point at its predecessor")
	}
	if critiqued.Content != draft.Content {
		t.Error("content must carry over unchanged")
	}
	if critiqued.ID == draft.ID {
		t.Error("new artifact must get its own ID")
	}
}

func TestArtifact_Revisions(t *testing.T) {
	brief := NewArtifact(StageBrief, "topic", nil)
	draft := NewArtifact(StageDraft, "v1", brief)
	rev1 := NewArtifact(StageRevision, "v2", draft)
	rev2 := NewArtifact(StageRevision, "v3", rev1)
	final := NewArtifact(StageFinal, "v3", rev2)

	if got := final.Revisions(); got != 2 {
		t.Errorf("expected 2 revisions, got %d", got)
	}
	if got := draft.Revisions(); got != 0 {
		t.Errorf("expected 0 revisions, got %d", got)
	}
}
