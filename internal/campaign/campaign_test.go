package campaign

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"postsmith/internal"
	"postsmith/internal/brand"
	"postsmith/internal/pipeline"
)

type fakeRunner struct {
	mu       sync.Mutex
	seen     []internal.Platform
	failFor  internal.Platform
	requests []internal.ContentRequest
}

func (f *fakeRunner) Run(_ context.Context, req internal.ContentRequest, _ *brand.Profile, _ string) (*pipeline.RunResult, error) {
	f.mu.Lock()
	f.seen = append(f.seen, req.Platform)
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if req.Platform == f.failFor {
		return nil, fmt.Errorf("provider down")
	}
	final := pipeline.NewArtifact(pipeline.StageFinal, "post for "+string(req.Platform), nil)
	return &pipeline.RunResult{Request: req, Final: final}, nil
}

func TestGenerate_FansOutPerPlatform(t *testing.T) {
	runner := &fakeRunner{}
	platforms := []internal.Platform{internal.PlatformLinkedIn, internal.PlatformTwitter, internal.PlatformThreads}

	results := Generate(context.Background(), runner, Brief{Topic: "launch"}, platforms, brand.Default(), "")

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	// Result order follows the given platform order regardless of completion order.
	for i, platform := range platforms {
		if results[i].Platform != platform {
			t.Errorf("result %d: expected %s, got %s", i, platform, results[i].Platform)
		}
		if results[i].Err != nil {
			t.Errorf("result %d: unexpected error %v", i, results[i].Err)
		}
		if !strings.Contains(results[i].Run.Final.Content, string(platform)) {
			t.Errorf("result %d carries the wrong run", i)
		}
	}

	// Every platform must get its own request ID.
	ids := make(map[string]bool)
	for _, req := range runner.requests {
		ids[req.ID] = true
	}
	if len(ids) != 3 {
		t.Errorf("expected 3 distinct request IDs, got %d", len(ids))
	}
}

func TestGenerate_OneFailureDoesNotStopOthers(t *testing.T) {
	runner := &fakeRunner{failFor: internal.PlatformTwitter}
	platforms := []internal.Platform{internal.PlatformLinkedIn, internal.PlatformTwitter}

	results := Generate(context.Background(), runner, Brief{Topic: "launch"}, platforms, brand.Default(), "")

	if results[0].Err != nil {
		t.Errorf("linkedin should succeed: %v", results[0].Err)
	}
	if results[1].Err == nil {
		t.Error("twitter should carry its error")
	}
	if results[1].Run != nil && results[1].Run.Final != nil {
		t.Error("failed platform must not carry a final artifact")
	}
}

func writeSeries(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "series.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSeries(t *testing.T) {
	path := writeSeries(t, `
name: launch week
goal: engagement
style: professional
posts:
  - topic: day one announcement
    platforms: [linkedin, x]
  - topic: behind the scenes
    style: casual
    platforms: [instagram]
`)

	s, err := LoadSeries(path)
	if err != nil {
		t.Fatalf("LoadSeries failed: %v", err)
	}
	if s.Name != "launch week" || len(s.Posts) != 2 {
		t.Fatalf("series not parsed: %+v", s)
	}

	brief, platforms, err := s.resolve(s.Posts[0])
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if brief.Style != internal.StyleProfessional {
		t.Errorf("series default style not applied, got %s", brief.Style)
	}
	if len(platforms) != 2 || platforms[1] != internal.PlatformTwitter {
		t.Errorf("platform alias x not resolved: %v", platforms)
	}

	brief2, _, err := s.resolve(s.Posts[1])
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if brief2.Style != internal.StyleCasual {
		t.Errorf("item style must override series default, got %s", brief2.Style)
	}
}

func TestLoadSeries_Invalid(t *testing.T) {
	if _, err := LoadSeries(writeSeries(t, "name: empty\nposts: []\n")); err == nil {
		t.Error("expected error for series with no posts")
	}
	if _, err := LoadSeries(writeSeries(t, "name: x\nposts:\n  - platforms: [linkedin]\n")); err == nil {
		t.Error("expected error for post with no topic")
	}
	if _, err := LoadSeries(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunSeries(t *testing.T) {
	runner := &fakeRunner{}
	path := writeSeries(t, `
name: two posts
posts:
  - topic: first
    platforms: [linkedin]
  - topic: second
    platforms: [linkedin, twitter]
`)
	s, err := LoadSeries(path)
	if err != nil {
		t.Fatal(err)
	}

	out, err := RunSeries(context.Background(), runner, s, brand.Default(), "")
	if err != nil {
		t.Fatalf("RunSeries failed: %v", err)
	}
	if len(out) != 2 || len(out[0]) != 1 || len(out[1]) != 2 {
		t.Fatalf("unexpected result shape: %v", out)
	}
}

func TestRunSeries_BadPlatform(t *testing.T) {
	runner := &fakeRunner{}
	path := writeSeries(t, `
name: broken
posts:
  - topic: first
    platforms: [myspace]
`)
	s, err := LoadSeries(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := RunSeries(context.Background(), runner, s, brand.Default(), ""); err == nil {
		t.Error("expected error for unknown platform")
	}
}
