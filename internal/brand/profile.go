// Package brand holds the long-lived brand identity applied to every
// generated post. A Profile is loaded once per run and passed read-only
// through the pipeline; edits happen only between runs, through the store.
package brand

import (
	"fmt"
	"strings"
	"time"

	"postsmith/internal"
)

// Profile is the brand identity document. Every pipeline stage receives its
// rendered prompt context; the Brand Guardian additionally enforces the
// forbidden-word list verbatim.
type Profile struct {
	Name    string `json:"brand_name"`
	Tagline string `json:"tagline"`

	ToneOfVoice       string   `json:"tone_of_voice"`
	FormalityLevel    string   `json:"formality_level"` // low, medium, high
	PersonalityTraits []string `json:"personality_traits"`

	ForbiddenWords   []string `json:"forbidden_words"`
	PreferredPhrases []string `json:"preferred_phrases"`

	EmojiPolicy      string `json:"emoji_policy"` // none, minimal, moderate, heavy
	MaxEmojisPerPost int    `json:"max_emojis_per_post"`
	HashtagPolicy    string `json:"hashtag_policy"` // none, minimal, moderate
	MaxHashtags      int    `json:"max_hashtags"`

	TargetAudience string `json:"target_audience"`

	PreferredLength map[internal.Platform]string `json:"preferred_length"` // short, medium, long

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Default returns a profile with the starter identity a fresh install gets.
func Default() *Profile {
	now := time.Now()
	return &Profile{
		Name:              "My Brand",
		ToneOfVoice:       "Expert but approachable",
		FormalityLevel:    "medium",
		PersonalityTraits: []string{"professional", "helpful", "concrete"},
		ForbiddenWords: []string{
			"innovative", "dynamic", "game-changer",
			"in today's world", "synergy", "leverage",
		},
		EmojiPolicy:      "minimal",
		MaxEmojisPerPost: 3,
		HashtagPolicy:    "minimal",
		MaxHashtags:      3,
		TargetAudience:   "IT professionals, developers, tech leads",
		PreferredLength: map[internal.Platform]string{
			internal.PlatformLinkedIn: "medium",
			internal.PlatformTwitter:  "short",
			internal.PlatformFacebook: "medium",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy. The pipeline clones the profile at run start so
// later edits never leak into an in-flight or completed run.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.PersonalityTraits = append([]string(nil), p.PersonalityTraits...)
	cp.ForbiddenWords = append([]string(nil), p.ForbiddenWords...)
	cp.PreferredPhrases = append([]string(nil), p.PreferredPhrases...)
	cp.PreferredLength = make(map[internal.Platform]string, len(p.PreferredLength))
	for k, v := range p.PreferredLength {
		cp.PreferredLength[k] = v
	}
	return &cp
}

// AddForbiddenWord appends word (lowercased, trimmed) unless already present.
// Returns true when the list changed.
func (p *Profile) AddForbiddenWord(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return false
	}
	for _, w := range p.ForbiddenWords {
		if w == word {
			return false
		}
	}
	p.ForbiddenWords = append(p.ForbiddenWords, word)
	p.UpdatedAt = time.Now()
	return true
}

// RemoveForbiddenWord deletes word from the list. Returns true when found.
func (p *Profile) RemoveForbiddenWord(word string) bool {
	word = strings.ToLower(strings.TrimSpace(word))
	for i, w := range p.ForbiddenWords {
		if w == word {
			p.ForbiddenWords = append(p.ForbiddenWords[:i], p.ForbiddenWords[i+1:]...)
			p.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// PromptContext renders the profile as the brand block injected into every
// agent prompt.
func (p *Profile) PromptContext() string {
	forbidden := strings.Join(p.ForbiddenWords, ", ")
	if forbidden == "" {
		forbidden = "none"
	}
	traits := strings.Join(p.PersonalityTraits, ", ")
	if traits == "" {
		traits = "professional"
	}

	var sb strings.Builder
	sb.WriteString("=== BRAND IDENTITY ===\n")
	fmt.Fprintf(&sb, "Brand: %s\n", p.Name)
	if p.Tagline != "" {
		fmt.Fprintf(&sb, "Tagline: %s\n", p.Tagline)
	}
	fmt.Fprintf(&sb, "Tone of voice: %s\n", p.ToneOfVoice)
	fmt.Fprintf(&sb, "Formality level: %s\n", p.FormalityLevel)
	fmt.Fprintf(&sb, "Personality traits: %s\n", traits)
	fmt.Fprintf(&sb, "\nTarget audience: %s\n", p.TargetAudience)
	sb.WriteString("\nRULES:\n")
	fmt.Fprintf(&sb, "- Forbidden words/phrases: %s\n", forbidden)
	if len(p.PreferredPhrases) > 0 {
		fmt.Fprintf(&sb, "- Preferred phrases: %s\n", strings.Join(p.PreferredPhrases, ", "))
	}
	fmt.Fprintf(&sb, "- Emoji policy: %s (max %d)\n", p.EmojiPolicy, p.MaxEmojisPerPost)
	fmt.Fprintf(&sb, "- Hashtag policy: %s (max %d)\n", p.HashtagPolicy, p.MaxHashtags)
	sb.WriteString("======================\n")
	return sb.String()
}
