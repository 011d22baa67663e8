package render

import (
	"strings"
	"testing"

	"postsmith/internal"
)

func TestHTML(t *testing.T) {
	out, err := HTML("**Big news.**\nWe shipped.")
	if err != nil {
		t.Fatalf("HTML failed: %v", err)
	}
	if !strings.Contains(out, "<strong>Big news.</strong>") {
		t.Errorf("bold not rendered: %s", out)
	}
	if !strings.Contains(out, "<br") {
		t.Errorf("single newline must hard-wrap: %s", out)
	}
}

func TestPage(t *testing.T) {
	out, err := Page(`launch <day>`, "hello")
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if !strings.Contains(out, "<title>launch &lt;day&gt;</title>") {
		t.Errorf("title not escaped: %s", out)
	}
	if !strings.Contains(out, "<p>hello</p>") {
		t.Errorf("body missing: %s", out)
	}
}

func TestCheckBudget(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		platform internal.Platform
		over     bool
	}{
		{"within limit", "short tweet", internal.PlatformTwitter, false},
		{"over limit", strings.Repeat("x", 300), internal.PlatformTwitter, true},
		{"exactly at limit", strings.Repeat("x", 280), internal.PlatformTwitter, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CheckBudget(tt.content, tt.platform)
			if r.Over != tt.over {
				t.Errorf("expected over=%v, got %+v", tt.over, r)
			}
		})
	}
}

func TestCheckBudget_CountsRunes(t *testing.T) {
	// 280 multibyte runes are still within the limit.
	content := strings.Repeat("é", 280)
	r := CheckBudget(content, internal.PlatformTwitter)
	if r.Over {
		t.Errorf("rune count must be used, not bytes: %+v", r)
	}
	if r.Length != 280 {
		t.Errorf("expected length 280, got %d", r.Length)
	}
}
