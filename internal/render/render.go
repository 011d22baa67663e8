// Package render turns finished posts into publishable previews and checks
// them against platform length budgets.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"postsmith/internal"
)

// CharacterLimits holds the hard caps enforced by each platform.
var CharacterLimits = map[internal.Platform]int{
	internal.PlatformLinkedIn:  3000,
	internal.PlatformTwitter:   280,
	internal.PlatformFacebook:  63206,
	internal.PlatformInstagram: 2200,
	internal.PlatformThreads:   500,
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// HTML renders a post's markdown to an HTML preview. Social posts are mostly
// plain text, so hard wraps keep single newlines visible.
func HTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// Page wraps rendered content in a minimal standalone document for --html
// output.
func Page(title, content string) (string, error) {
	body, err := HTML(content)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&sb, "<meta charset=\"utf-8\">\n<title>%s</title>\n", htmlEscape(title))
	sb.WriteString("<style>body{max-width:42em;margin:2em auto;font-family:sans-serif;line-height:1.5;padding:0 1em}</style>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(body)
	sb.WriteString("</body>\n</html>\n")
	return sb.String(), nil
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// BudgetReport describes how a post sits against its platform's length cap.
type BudgetReport struct {
	Platform  internal.Platform `json:"platform"`
	Length    int               `json:"length"`
	Limit     int               `json:"limit"`
	Remaining int               `json:"remaining"`
	Over      bool              `json:"over"`
}

// CheckBudget measures content in runes against the platform limit. Unknown
// platforms get a zero limit and never report over.
func CheckBudget(content string, platform internal.Platform) BudgetReport {
	length := utf8.RuneCountInString(content)
	limit := CharacterLimits[platform]
	report := BudgetReport{
		Platform: platform,
		Length:   length,
		Limit:    limit,
	}
	if limit > 0 {
		report.Remaining = limit - length
		report.Over = length > limit
	}
	return report
}

// String formats the report for terminal output.
func (r BudgetReport) String() string {
	if r.Limit == 0 {
		return fmt.Sprintf("%s: %d chars (no limit known)", r.Platform, r.Length)
	}
	if r.Over {
		return fmt.Sprintf("%s: %d/%d chars, OVER by %d", r.Platform, r.Length, r.Limit, -r.Remaining)
	}
	return fmt.Sprintf("%s: %d/%d chars (%d remaining)", r.Platform, r.Length, r.Limit, r.Remaining)
}
