package critique

import "testing"

func TestExtractScore(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"score label", "SCORE: 8/10\nGood hook.", 8},
		{"slash form", "I'd give this 7/10 overall", 7},
		{"decimal", "7.5 / 10 with caveats", 7.5},
		{"rating label", "Rating: 6", 6},
		{"clamped high", "Score: 15", 10},
		{"missing", "This is fine I guess", DefaultScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractScore(tt.text); got != tt.want {
				t.Errorf("ExtractScore(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseIssues(t *testing.T) {
	text := `SCORE: 5/10
ISSUES:
- [major] The hook is generic
- [minor] Too many hashtags
- Untagged issue defaults to major

Closing remark outside the block.
- this bullet is not an issue`

	issues := ParseIssues(text)

	if len(issues) != 3 {
		t.Fatalf("expected 3 issues, got %d: %v", len(issues), issues)
	}
	if issues[0].Severity != SeverityMajor || issues[0].Description != "The hook is generic" {
		t.Errorf("unexpected first issue: %+v", issues[0])
	}
	if issues[1].Severity != SeverityMinor {
		t.Errorf("expected minor severity, got %s", issues[1].Severity)
	}
	if issues[2].Severity != SeverityMajor {
		t.Errorf("untagged issue should default to major, got %s", issues[2].Severity)
	}
}

func TestParseIssues_ViolationsHeader(t *testing.T) {
	text := `VIOLATIONS:
- uses forbidden word "synergy"`

	issues := ParseIssues(text)
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
}

func TestParseIssues_NoBlock(t *testing.T) {
	if issues := ParseIssues("- a stray bullet with no header"); issues != nil {
		t.Errorf("expected nil, got %v", issues)
	}
}

func TestParse_PassThreshold(t *testing.T) {
	res := Parse("SCORE: 7/10\nISSUES:\n- [minor] nitpick", 7.0)

	if !res.Pass {
		t.Error("score at threshold should pass")
	}
	if res.Score != 7 {
		t.Errorf("expected score 7, got %v", res.Score)
	}
	if len(res.Issues) != 1 {
		t.Errorf("expected 1 issue, got %d", len(res.Issues))
	}

	res = Parse("SCORE: 6.9/10", 7.0)
	if res.Pass {
		t.Error("score below threshold should fail")
	}
}

func TestReject(t *testing.T) {
	res := Reject("forbidden words found", []Issue{{Severity: SeverityMajor, Description: "contains 'synergy'"}})

	if res.Pass {
		t.Error("rejection must not pass")
	}
	if res.Score != 0 {
		t.Errorf("expected score 0, got %v", res.Score)
	}
	if len(res.Issues) != 1 {
		t.Errorf("expected 1 issue, got %d", len(res.Issues))
	}
}
