// Package critique parses the critic agent's free-text judgment into a
// structured result the orchestrator can act on.
package critique

import (
	"regexp"
	"strconv"
	"strings"
)

// Severity of a single critique issue.
type Severity string

const (
	SeverityMajor Severity = "major"
	SeverityMinor Severity = "minor"
)

// Issue is one concrete problem the critic found.
type Issue struct {
	Severity    Severity `json:"severity"`
	Description string   `json:"description"`
}

// Result is the structured pass/fail judgment attached to a draft.
type Result struct {
	Pass   bool    `json:"pass"`
	Score  float64 `json:"score"`
	Issues []Issue `json:"issues"`
	Raw    string  `json:"raw"`
}

// DefaultScore is assumed when no score can be extracted, keeping the
// pipeline in the revision loop rather than accepting blind.
const DefaultScore = 5.0

// Score patterns the critic models actually produce, in match order.
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)score[:\s]+(\d+(?:\.\d+)?)`), // SCORE: 7
	regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*10`),       // 7/10, 7.5 / 10
	regexp.MustCompile(`(?i)rating[:\s]+(\d+(?:\.\d+)?)`),
}

var issueLineRe = regexp.MustCompile(`^[-*]\s*(?:\[(major|minor)\]\s*)?(.+)$`)

// ExtractScore pulls a numeric 0-10 quality score out of critic text,
// clamping out-of-range values. Returns DefaultScore when nothing matches.
func ExtractScore(text string) float64 {
	for _, re := range scorePatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			score, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if score < 0 {
				return 0
			}
			if score > 10 {
				return 10
			}
			return score
		}
	}
	return DefaultScore
}

// ParseIssues collects issue bullet lines following an ISSUES: or
// VIOLATIONS: header. Severity defaults to major when untagged.
func ParseIssues(text string) []Issue {
	var issues []Issue
	inBlock := false

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		upper := strings.ToUpper(line)
		if strings.HasPrefix(upper, "ISSUES:") || strings.HasPrefix(upper, "VIOLATIONS:") {
			inBlock = true
			continue
		}
		if !inBlock {
			continue
		}
		m := issueLineRe.FindStringSubmatch(line)
		if m == nil {
			if line == "" {
				continue
			}
			// a non-bullet line ends the block
			inBlock = false
			continue
		}
		sev := SeverityMajor
		if m[1] == "minor" {
			sev = SeverityMinor
		}
		desc := strings.TrimSpace(m[2])
		if desc != "" {
			issues = append(issues, Issue{Severity: sev, Description: desc})
		}
	}
	return issues
}

// Parse builds a full Result from critic text. The draft passes when its
// score meets threshold.
func Parse(text string, threshold float64) *Result {
	score := ExtractScore(text)
	return &Result{
		Pass:   score >= threshold,
		Score:  score,
		Issues: ParseIssues(text),
		Raw:    text,
	}
}

// Reject builds a failing Result from explicit issues, used when a
// deterministic check (forbidden words, language mismatch) overrides the
// critic.
func Reject(reason string, issues []Issue) *Result {
	return &Result{
		Pass:   false,
		Score:  0,
		Issues: issues,
		Raw:    reason,
	}
}
