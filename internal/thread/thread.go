// Package thread splits a long post into a numbered tweet thread, breaking
// at paragraph, sentence and word boundaries in that order of preference.
package thread

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// TweetLimit is the per-tweet character cap.
	TweetLimit = 280

	// numberingReserve keeps room for a " (NN/NN)" suffix on each tweet.
	numberingReserve = 8
)

// Split breaks content into a thread. Content that fits in one tweet comes
// back as a single unnumbered entry; longer content is split and each tweet
// gets an " (i/n)" suffix.
func Split(content string) []string {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	if utf8.RuneCountInString(content) <= TweetLimit {
		return []string{content}
	}

	parts := split(content, TweetLimit-numberingReserve)
	tweets := make([]string, len(parts))
	for i, p := range parts {
		tweets[i] = fmt.Sprintf("%s (%d/%d)", p, i+1, len(parts))
	}
	return tweets
}

func split(text string, budget int) []string {
	var parts []string
	remaining := text

	for utf8.RuneCountInString(remaining) > budget {
		cut := findCut(remaining, budget)
		part := strings.TrimSpace(remaining[:cut])
		if part != "" {
			parts = append(parts, part)
		}
		remaining = strings.TrimSpace(remaining[cut:])
	}
	if remaining != "" {
		parts = append(parts, remaining)
	}
	return parts
}

// findCut returns the byte offset to split at, keeping at most budget runes.
// Preference order: paragraph break, sentence end, word boundary, hard cut.
func findCut(text string, budget int) int {
	runes := []rune(text)
	if len(runes) <= budget {
		return len(text)
	}
	candidate := runes[:budget]

	if idx := strings.LastIndex(string(candidate), "\n\n"); idx > 0 {
		return idx + 2
	}

	for i := len(candidate) - 2; i > 0; i-- {
		r := candidate[i]
		if (r == '.' || r == '!' || r == '?') && unicode.IsSpace(candidate[i+1]) {
			return len(string(candidate[:i+1]))
		}
	}

	for i := len(candidate) - 1; i > 0; i-- {
		if unicode.IsSpace(candidate[i]) {
			return len(string(candidate[:i]))
		}
	}

	return len(string(candidate))
}
