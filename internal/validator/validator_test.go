package validator

import (
	"strings"
	"testing"
)

var v = New()

func TestIsValid_MatchingLanguage(t *testing.T) {
	content := "We shipped the new release today and the team could not be prouder of the result."

	ok, err := v.IsValid(content, "English")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected English content to validate against English")
	}

	ok, err = v.IsValid(content, "en")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected English content to validate against ISO code en")
	}
}

func TestIsValid_Mismatch(t *testing.T) {
	content := "Dzisiaj wypuściliśmy nową wersję naszego produktu i cały zespół jest z tego bardzo dumny."

	ok, err := v.IsValid(content, "English")
	if ok {
		t.Error("expected Polish content to fail English validation")
	}
	if err == nil || !strings.Contains(err.Error(), "expected English") {
		t.Errorf("expected mismatch error, got %v", err)
	}
}

func TestIsValid_EmptyContent(t *testing.T) {
	ok, err := v.IsValid("   ", "English")
	if ok || err == nil {
		t.Error("expected empty content to fail")
	}
}

func TestIsValid_ShortTextPasses(t *testing.T) {
	ok, err := v.IsValid("Ship it! 🚀", "English")
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("short text should pass unchecked")
	}
}

func TestIsValid_NoLanguageRequested(t *testing.T) {
	ok, err := v.IsValid("anything at all", "")
	if err != nil || !ok {
		t.Error("empty requested language should always pass")
	}
}
