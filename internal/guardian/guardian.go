// Package guardian implements the final brand-compliance gate. It combines
// a deterministic forbidden-term scan with the Brand Guardian agent's
// free-text verdict.
package guardian

import (
	"fmt"
	"strings"

	"postsmith/internal/brand"
	"postsmith/internal/critique"
)

// Verdict markers in the guardian agent's answer. A deterministic forbidden
// word hit always rejects regardless of what the model said.
var negativeMarkers = []string{
	"violation", "violates", "not compliant", "non-compliant",
	"off-brand", "forbidden", "problem", "does not follow",
}

var positiveMarkers = []string{
	"compliant", "approved", "no issues", "on-brand", "follows the brand",
}

// ScanForbidden returns one issue per forbidden word found in content
// (case-insensitive substring match, the same rule the original system
// applied).
func ScanForbidden(content string, profile *brand.Profile) []critique.Issue {
	var issues []critique.Issue
	lower := strings.ToLower(content)
	for _, word := range profile.ForbiddenWords {
		w := strings.ToLower(strings.TrimSpace(word))
		if w == "" {
			continue
		}
		if strings.Contains(lower, w) {
			issues = append(issues, critique.Issue{
				Severity:    critique.SeverityMajor,
				Description: fmt.Sprintf("contains forbidden word %q", word),
			})
		}
	}
	return issues
}

// Check evaluates the final content. verdict is the Brand Guardian agent's
// raw answer. The returned Result fails when forbidden words are present or
// the verdict reads negative without an overriding positive marker.
func Check(content, verdict string, profile *brand.Profile) *critique.Result {
	if issues := ScanForbidden(content, profile); len(issues) > 0 {
		return critique.Reject("forbidden words found", issues)
	}

	lower := strings.ToLower(verdict)
	hasNegative := containsAny(lower, negativeMarkers)
	hasPositive := containsAny(lower, positiveMarkers)

	if hasNegative && !hasPositive {
		issues := critique.ParseIssues(verdict)
		if len(issues) == 0 {
			issues = []critique.Issue{{
				Severity:    critique.SeverityMajor,
				Description: strings.TrimSpace(verdict),
			}}
		}
		return critique.Reject("brand guardian rejected the post", issues)
	}

	return &critique.Result{Pass: true, Score: 10, Raw: verdict}
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
