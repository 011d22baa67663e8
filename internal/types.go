package internal

import (
	"fmt"
	"strings"
	"time"
)

// Platform is a target social network for generated content.
type Platform string

const (
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformTwitter   Platform = "Twitter"
	PlatformFacebook  Platform = "Facebook"
	PlatformInstagram Platform = "Instagram"
	PlatformThreads   Platform = "Threads"
)

// AllPlatforms lists every supported platform in display order.
var AllPlatforms = []Platform{
	PlatformLinkedIn,
	PlatformTwitter,
	PlatformFacebook,
	PlatformInstagram,
	PlatformThreads,
}

// ParsePlatform resolves a case-insensitive platform name ("linkedin",
// "Twitter", "x") to its canonical Platform value.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linkedin":
		return PlatformLinkedIn, nil
	case "twitter", "x":
		return PlatformTwitter, nil
	case "facebook":
		return PlatformFacebook, nil
	case "instagram":
		return PlatformInstagram, nil
	case "threads":
		return PlatformThreads, nil
	}
	return "", fmt.Errorf("unknown platform: %s", name)
}

// Goal is the communication objective the generated post optimizes for.
type Goal string

const (
	GoalEngagement   Goal = "engagement"
	GoalAuthority    Goal = "authority"
	GoalViral        Goal = "viral"
	GoalConversion   Goal = "conversion"
	GoalEducation    Goal = "education"
	GoalStorytelling Goal = "storytelling"
)

// ParseGoal resolves a case-insensitive goal name to its Goal value.
func ParseGoal(name string) (Goal, error) {
	g := Goal(strings.ToLower(strings.TrimSpace(name)))
	switch g {
	case GoalEngagement, GoalAuthority, GoalViral, GoalConversion, GoalEducation, GoalStorytelling:
		return g, nil
	}
	return "", fmt.Errorf("unknown goal: %s", name)
}

// Style is the voice the copywriter adopts.
type Style string

const (
	StyleProfessional  Style = "professional"
	StyleCasual        Style = "casual"
	StyleControversial Style = "controversial"
	StyleInspirational Style = "inspirational"
	StyleAnalytical    Style = "analytical"
	StyleHumorous      Style = "humorous"
)

// ParseStyle resolves a case-insensitive style name to its Style value.
func ParseStyle(name string) (Style, error) {
	s := Style(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case StyleProfessional, StyleCasual, StyleControversial, StyleInspirational, StyleAnalytical, StyleHumorous:
		return s, nil
	}
	return "", fmt.Errorf("unknown style: %s", name)
}

// ContentRequest describes one generation request. It is immutable once
// submitted to the pipeline.
type ContentRequest struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Platform  Platform  `json:"platform"`
	Goal      Goal      `json:"goal"`
	Style     Style     `json:"style"`
	Language  string    `json:"language"`
	Profile   string    `json:"profile"`
	Timestamp time.Time `json:"timestamp"`
}
