package localize

import (
	"fmt"
	"regexp"
)

// Social tokens that machine translation must not touch.
var (
	reURL     = regexp.MustCompile(`https?://[^\s]+`)
	reHashtag = regexp.MustCompile(`#[\p{L}\p{N}_]+`)
	reMention = regexp.MustCompile(`@[A-Za-z0-9_.]+`)

	reMarker = regexp.MustCompile(`\[PH(\d+)\]`)
)

// protect replaces URLs, hashtags and mentions with numbered [PHn] markers
// and returns the captured originals for restore.
func protect(text string) (string, []string) {
	var captured []string
	swap := func(match string) string {
		id := fmt.Sprintf("[PH%d]", len(captured))
		captured = append(captured, match)
		return id
	}

	// URLs first so a hashtag inside a URL fragment is not captured twice.
	text = reURL.ReplaceAllStringFunc(text, swap)
	text = reHashtag.ReplaceAllStringFunc(text, swap)
	text = reMention.ReplaceAllStringFunc(text, swap)
	return text, captured
}

// restore puts captured tokens back. Out-of-range markers stay as-is.
func restore(text string, captured []string) string {
	return reMarker.ReplaceAllStringFunc(text, func(match string) string {
		sub := reMarker.FindStringSubmatch(match)
		idx := 0
		fmt.Sscanf(sub[1], "%d", &idx)
		if idx < 0 || idx >= len(captured) {
			return match
		}
		return captured[idx]
	})
}

// missingMarkers reports the indices of markers the translation dropped.
func missingMarkers(text string, captured []string) []int {
	present := make(map[int]bool)
	for _, sub := range reMarker.FindAllStringSubmatch(text, -1) {
		idx := 0
		fmt.Sscanf(sub[1], "%d", &idx)
		present[idx] = true
	}
	var missing []int
	for i := range captured {
		if !present[i] {
			missing = append(missing, i)
		}
	}
	return missing
}
