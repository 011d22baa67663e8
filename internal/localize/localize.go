// Package localize translates finished posts into additional languages while
// keeping hashtags, mentions and links intact.
package localize

import (
	"context"
	"fmt"

	translate "cloud.google.com/go/translate"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// Translator turns text into the target language. target is a BCP 47 tag or
// ISO 639-1 code.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Localize translates content with social tokens protected. Tokens the
// translation dropped are logged and lost; the rest are restored in place.
func Localize(ctx context.Context, tr Translator, content, target string) (string, error) {
	protected, captured := protect(content)

	translated, err := tr.Translate(ctx, protected, target)
	if err != nil {
		return "", fmt.Errorf("failed to localize to %s: %w", target, err)
	}

	if missing := missingMarkers(translated, captured); len(missing) > 0 {
		zap.S().Warnw("translation dropped protected tokens", "target", target, "missing", missing)
	}
	return restore(translated, captured), nil
}

// GoogleTranslator uses the Google Cloud Translation API.
type GoogleTranslator struct {
	client *translate.Client
}

// NewGoogle creates a translator. credentialsFile may be empty to use
// ambient application-default credentials.
func NewGoogle(ctx context.Context, credentialsFile string) (*GoogleTranslator, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create translate client: %w", err)
	}
	return &GoogleTranslator{client: client}, nil
}

func (g *GoogleTranslator) Translate(ctx context.Context, text, target string) (string, error) {
	tag, err := language.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid target language %q: %w", target, err)
	}

	translations, err := g.client.Translate(ctx, []string{text}, tag, nil)
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	if len(translations) == 0 {
		return "", fmt.Errorf("no translation returned")
	}
	return translations[0].Text, nil
}

func (g *GoogleTranslator) Close() error {
	return g.client.Close()
}
