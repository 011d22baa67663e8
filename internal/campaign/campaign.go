// Package campaign fans one topic out across several platforms and runs
// multi-post series defined in YAML.
package campaign

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"postsmith/internal"
	"postsmith/internal/brand"
	"postsmith/internal/pipeline"
)

// Runner executes one pipeline run. Satisfied by pipeline.Orchestrator.
type Runner interface {
	Run(ctx context.Context, req internal.ContentRequest, profile *brand.Profile, learning string) (*pipeline.RunResult, error)
}

// Result pairs one platform's outcome with its error, if any.
type Result struct {
	Platform internal.Platform
	Run      *pipeline.RunResult
	Err      error
}

// Brief describes one piece of content to generate.
type Brief struct {
	Topic    string
	Goal     internal.Goal
	Style    internal.Style
	Language string
	Profile  string
}

// Generate runs the full pipeline for brief on every platform concurrently.
// Each platform gets its own request and its own goroutine; one platform
// failing does not stop the others. Results come back in the order the
// platforms were given.
func Generate(ctx context.Context, runner Runner, brief Brief, platforms []internal.Platform, profile *brand.Profile, learning string) []Result {
	results := make([]Result, len(platforms))

	var wg sync.WaitGroup
	for i, platform := range platforms {
		wg.Add(1)
		go func(i int, platform internal.Platform) {
			defer wg.Done()

			req := internal.ContentRequest{
				ID:        uuid.NewString(),
				Topic:     brief.Topic,
				Platform:  platform,
				Goal:      brief.Goal,
				Style:     brief.Style,
				Language:  brief.Language,
				Profile:   brief.Profile,
				Timestamp: time.Now(),
			}

			run, err := runner.Run(ctx, req, profile, learning)
			if err != nil {
				zap.S().Warnw("campaign platform failed", "platform", platform, "error", err)
			}
			results[i] = Result{Platform: platform, Run: run, Err: err}
		}(i, platform)
	}
	wg.Wait()

	return results
}

// SeriesItem is one entry in a campaign series file.
type SeriesItem struct {
	Topic     string   `yaml:"topic"`
	Platforms []string `yaml:"platforms"`
	Goal      string   `yaml:"goal"`
	Style     string   `yaml:"style"`
	Language  string   `yaml:"language"`
}

// Series is a YAML-defined campaign: shared defaults plus per-post items.
type Series struct {
	Name     string       `yaml:"name"`
	Goal     string       `yaml:"goal"`
	Style    string       `yaml:"style"`
	Language string       `yaml:"language"`
	Posts    []SeriesItem `yaml:"posts"`
}

// LoadSeries reads and validates a series file.
func LoadSeries(path string) (*Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read series file: %w", err)
	}

	var s Series
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse series file: %w", err)
	}
	if len(s.Posts) == 0 {
		return nil, fmt.Errorf("series %q has no posts", s.Name)
	}
	for i, post := range s.Posts {
		if post.Topic == "" {
			return nil, fmt.Errorf("series post %d has no topic", i+1)
		}
	}
	return &s, nil
}

// resolve fills an item's gaps from the series defaults and parses the
// enums. Posts without platforms default to LinkedIn.
func (s *Series) resolve(item SeriesItem) (Brief, []internal.Platform, error) {
	goalName := item.Goal
	if goalName == "" {
		goalName = s.Goal
	}
	if goalName == "" {
		goalName = string(internal.GoalEngagement)
	}
	styleName := item.Style
	if styleName == "" {
		styleName = s.Style
	}
	if styleName == "" {
		styleName = string(internal.StyleProfessional)
	}
	lang := item.Language
	if lang == "" {
		lang = s.Language
	}
	if lang == "" {
		lang = "en"
	}

	goal, err := internal.ParseGoal(goalName)
	if err != nil {
		return Brief{}, nil, err
	}
	style, err := internal.ParseStyle(styleName)
	if err != nil {
		return Brief{}, nil, err
	}

	platforms := make([]internal.Platform, 0, len(item.Platforms))
	for _, p := range item.Platforms {
		platform, err := internal.ParsePlatform(p)
		if err != nil {
			return Brief{}, nil, err
		}
		platforms = append(platforms, platform)
	}
	if len(platforms) == 0 {
		platforms = []internal.Platform{internal.PlatformLinkedIn}
	}

	return Brief{
		Topic:    item.Topic,
		Goal:     goal,
		Style:    style,
		Language: lang,
	}, platforms, nil
}

// RunSeries executes every post in the series in order, fanning each one out
// across its platforms. A cancelled context stops between posts.
func RunSeries(ctx context.Context, runner Runner, s *Series, profile *brand.Profile, learning string) ([][]Result, error) {
	out := make([][]Result, 0, len(s.Posts))
	for i, item := range s.Posts {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		brief, platforms, err := s.resolve(item)
		if err != nil {
			return out, fmt.Errorf("series post %d: %w", i+1, err)
		}
		out = append(out, Generate(ctx, runner, brief, platforms, profile, learning))
	}
	return out, nil
}
