// Package validator checks that a generated post is written in the language
// the content request asked for.
package validator

import (
	"fmt"
	"strings"

	"postsmith/internal/detector"
)

// minValidationLength is the minimum rune count required to attempt language
// detection. Shorter texts produce unreliable results and pass unchecked.
const minValidationLength = 20

// Validator checks generated content against the requested language. The
// underlying detector is expensive to build; reuse the instance.
type Validator struct {
	det *detector.Detector
}

// New creates a Validator backed by the lingua-go language detector.
func New() *Validator {
	return &Validator{det: detector.New()}
}

// IsValid returns true when content appears to be written in lang, which may
// be an ISO 639-1 code ("en") or an English language name ("English").
//
// Empty content fails. Short texts and texts whose language cannot be
// determined pass without error. On mismatch the returned error names both
// languages.
func (v *Validator) IsValid(content, lang string) (bool, error) {
	if lang == "" {
		return true, nil
	}

	text := strings.TrimSpace(content)
	if text == "" {
		return false, fmt.Errorf("generated content is empty")
	}

	if len([]rune(text)) < minValidationLength {
		return true, nil
	}

	iso, ok := v.det.DetectISO(text)
	if !ok {
		// Ambiguous language, cannot validate.
		return true, nil
	}
	name, _ := v.det.DetectName(text)

	if strings.EqualFold(iso, lang) || strings.EqualFold(name, lang) {
		return true, nil
	}
	return false, fmt.Errorf("expected %s but detected %s", lang, name)
}
