package brand

import (
	"strings"
	"testing"

	"postsmith/internal"
)

func TestDefault(t *testing.T) {
	p := Default()

	if p.Name == "" {
		t.Error("expected non-empty brand name")
	}
	if len(p.ForbiddenWords) == 0 {
		t.Error("expected default forbidden words")
	}
	if p.MaxEmojisPerPost <= 0 {
		t.Error("expected positive emoji budget")
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestProfile_Clone_Independent(t *testing.T) {
	p := Default()
	cp := p.Clone()

	cp.AddForbiddenWord("revolutionary")
	cp.PersonalityTraits[0] = "changed"
	cp.PreferredLength[internal.PlatformTwitter] = "long"

	for _, w := range p.ForbiddenWords {
		if w == "revolutionary" {
			t.Error("clone edit leaked into original forbidden words")
		}
	}
	if p.PersonalityTraits[0] == "changed" {
		t.Error("clone edit leaked into original traits")
	}
	if p.PreferredLength[internal.PlatformTwitter] != "short" {
		t.Error("clone edit leaked into original length map")
	}
}

func TestProfile_AddForbiddenWord(t *testing.T) {
	p := Default()

	if !p.AddForbiddenWord("  Revolutionary ") {
		t.Error("expected word to be added")
	}
	if p.AddForbiddenWord("revolutionary") {
		t.Error("expected duplicate to be rejected")
	}
	if p.AddForbiddenWord("   ") {
		t.Error("expected blank word to be rejected")
	}

	found := false
	for _, w := range p.ForbiddenWords {
		if w == "revolutionary" {
			found = true
		}
	}
	if !found {
		t.Error("expected normalized word in list")
	}
}

func TestProfile_RemoveForbiddenWord(t *testing.T) {
	p := Default()
	p.AddForbiddenWord("buzzword")

	if !p.RemoveForbiddenWord("BUZZWORD") {
		t.Error("expected removal to succeed case-insensitively")
	}
	if p.RemoveForbiddenWord("buzzword") {
		t.Error("expected second removal to fail")
	}
}

func TestProfile_PromptContext(t *testing.T) {
	p := Default()
	p.Tagline = "Ship it"
	p.PreferredPhrases = []string{"in practice"}

	ctx := p.PromptContext()

	for _, want := range []string{
		"BRAND IDENTITY",
		p.Name,
		"Ship it",
		p.ToneOfVoice,
		"in practice",
		"Forbidden words/phrases:",
		"game-changer",
	} {
		if !strings.Contains(ctx, want) {
			t.Errorf("prompt context missing %q", want)
		}
	}
}

func TestProfile_PromptContext_EmptyLists(t *testing.T) {
	p := Default()
	p.ForbiddenWords = nil
	p.PersonalityTraits = nil

	ctx := p.PromptContext()

	if !strings.Contains(ctx, "Forbidden words/phrases: none") {
		t.Error("expected 'none' for empty forbidden list")
	}
	if !strings.Contains(ctx, "Personality traits: professional") {
		t.Error("expected fallback trait")
	}
}
