package localize

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeTranslator struct {
	transform func(string) string
	err       error
}

func (f *fakeTranslator) Translate(_ context.Context, text, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.transform(text), nil
}

func TestProtect_CapturesSocialTokens(t *testing.T) {
	text := "Big launch! Details at https://example.com/post #launch #DevLife cc @jane_doe"
	protected, captured := protect(text)

	if len(captured) != 4 {
		t.Fatalf("expected 4 captured tokens, got %d: %v", len(captured), captured)
	}
	for _, tok := range []string{"https://example.com/post", "#launch", "#DevLife", "@jane_doe"} {
		if strings.Contains(protected, tok) {
			t.Errorf("token %q not protected: %s", tok, protected)
		}
	}
	if restored := restore(protected, captured); restored != text {
		t.Errorf("round trip mismatch:\n%s\n%s", text, restored)
	}
}

func TestProtect_UnicodeHashtags(t *testing.T) {
	protected, captured := protect("Nuestro lanzamiento #lanzamiento2026 está aquí")
	if len(captured) != 1 || captured[0] != "#lanzamiento2026" {
		t.Fatalf("unicode hashtag not captured: %v", captured)
	}
	if strings.Contains(protected, "#") {
		t.Errorf("hashtag left in protected text: %s", protected)
	}
}

func TestLocalize_RestoresTokens(t *testing.T) {
	tr := &fakeTranslator{transform: func(s string) string {
		// Pretend translation reorders the sentence around the markers.
		return "TRADUCIDO " + s
	}}

	out, err := Localize(context.Background(), tr, "Check #launch at https://example.com", "es")
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}
	if !strings.Contains(out, "#launch") || !strings.Contains(out, "https://example.com") {
		t.Errorf("tokens not restored: %s", out)
	}
	if strings.Contains(out, "[PH") {
		t.Errorf("markers left in output: %s", out)
	}
}

func TestLocalize_TranslatorError(t *testing.T) {
	tr := &fakeTranslator{err: fmt.Errorf("quota exceeded")}
	_, err := Localize(context.Background(), tr, "text", "fr")
	if err == nil || !strings.Contains(err.Error(), "fr") {
		t.Errorf("expected error naming the target language, got %v", err)
	}
}

func TestLocalize_DroppedMarkerSurvivesAsGap(t *testing.T) {
	tr := &fakeTranslator{transform: func(s string) string {
		// A sloppy translation that eats the first marker.
		return strings.Replace(s, "[PH0]", "", 1)
	}}

	out, err := Localize(context.Background(), tr, "See #one and #two", "de")
	if err != nil {
		t.Fatalf("Localize failed: %v", err)
	}
	if strings.Contains(out, "#one") {
		t.Errorf("dropped token should not reappear: %s", out)
	}
	if !strings.Contains(out, "#two") {
		t.Errorf("surviving token must be restored: %s", out)
	}
}
