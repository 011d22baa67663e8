/*
Copyright © 2026 Postsmith Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"postsmith/internal"
	"postsmith/internal/localize"
	"postsmith/internal/pipeline"
	"postsmith/internal/render"
	"postsmith/internal/thread"
)

var (
	platformName string
	goalName     string
	styleName    string
	languageCode string
	profileName  string

	quick         bool
	variantCount  int
	asThread      bool
	localeTargets []string

	outputFile string
	htmlFile   string
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a post through the full agent pipeline",
	Long: `Runs the topic through strategist, copywriter, critic, editor and brand
guardian. The draft loops through critique and revision until it clears the
quality threshold, then the brand guardian checks it against the brand
profile.

Modes:
  --quick        single copywriter pass, no refinement loop
  --variations   N quick drafts in different styles

Post-processing:
  --thread       split the result into a numbered tweet thread
  --locales      translate the result into extra languages (es,fr,...)`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		platform, err := internal.ParsePlatform(platformName)
		if err != nil {
			return err
		}
		goal, err := internal.ParseGoal(goalName)
		if err != nil {
			return err
		}
		style, err := internal.ParseStyle(styleName)
		if err != nil {
			return err
		}

		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if profileName == "" {
			profileName = cfg.Brand.DefaultProfile
		}
		profile, err := db.LoadProfile(ctx, profileName)
		if err != nil {
			return fmt.Errorf("failed to load brand profile: %w", err)
		}
		learning, err := db.LearningContext(ctx, string(platform))
		if err != nil {
			return fmt.Errorf("failed to build learning context: %w", err)
		}

		router, err := buildRouter(cfg)
		if err != nil {
			return err
		}
		orch := buildOrchestrator(cfg, router)

		req := internal.ContentRequest{
			ID:        uuid.NewString(),
			Topic:     topic,
			Platform:  platform,
			Goal:      goal,
			Style:     style,
			Language:  languageCode,
			Profile:   profileName,
			Timestamp: time.Now(),
		}

		if variantCount > 0 {
			styles := []internal.Style{
				internal.StyleProfessional, internal.StyleCasual, internal.StyleControversial,
				internal.StyleInspirational, internal.StyleAnalytical, internal.StyleHumorous,
			}
			if variantCount < len(styles) {
				styles = styles[:variantCount]
			}
			results, err := orch.Variations(ctx, req, profile, learning, styles)
			if err != nil && len(results) == 0 {
				return err
			}
			for _, res := range results {
				fmt.Printf("=== %s ===\n%s\n\n", res.Request.Style, res.Final.Content)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "Some variations failed: %v\n", err)
			}
			return nil
		}

		var res *pipeline.RunResult
		if quick {
			res, err = orch.RunQuick(ctx, req, profile, learning)
		} else {
			res, err = orch.Run(ctx, req, profile, learning)
		}
		if err != nil {
			return reportRunFailure(err)
		}

		content := res.Final.Content

		_ = db.SaveRequest(ctx, req)
		_ = db.SaveArtifacts(ctx, req.ID, res.Final)
		score := 0.0
		if res.Critique != nil {
			score = res.Critique.Score
		}
		if _, err := db.AddHistory(ctx, string(platform), topic, content, score); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to record history: %v\n", err)
		}

		fmt.Println(content)
		fmt.Fprintf(os.Stderr, "\n%s\n", render.CheckBudget(content, platform))
		if res.Critique != nil {
			fmt.Fprintf(os.Stderr, "Quality: %.1f/10 after %d revision(s) in %s\n",
				res.Critique.Score, res.Iterations, res.Duration.Round(time.Millisecond))
		}

		if asThread {
			tweets := thread.Split(content)
			if len(tweets) > 1 {
				fmt.Println("\n--- Thread ---")
				for _, tw := range tweets {
					fmt.Printf("%s\n\n", tw)
				}
			}
		}

		if len(localeTargets) > 0 {
			tr, err := localize.NewGoogle(ctx, cfg.Translate.CredentialsFile)
			if err != nil {
				return fmt.Errorf("failed to create translator: %w", err)
			}
			defer tr.Close()
			for _, target := range localeTargets {
				localized, err := localize.Localize(ctx, tr, content, target)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Localization to %s failed: %v\n", target, err)
					continue
				}
				fmt.Printf("\n--- %s ---\n%s\n", target, localized)
			}
		}

		if outputFile != "" {
			if err := writeOutput(outputFile, content); err != nil {
				return err
			}
		}
		if htmlFile != "" {
			page, err := render.Page(topic, content)
			if err != nil {
				return err
			}
			if err := writeOutput(htmlFile, page); err != nil {
				return err
			}
		}
		return nil
	},
}

// reportRunFailure prints the judgment attached to a failed run so the user
// sees why the draft never converged.
func reportRunFailure(err error) error {
	var conv *pipeline.ConvergenceError
	if errors.As(err, &conv) {
		fmt.Fprintf(os.Stderr, "Draft did not reach the quality bar after %d revision(s).\n", conv.Attempts)
		if conv.Critique != nil {
			fmt.Fprintf(os.Stderr, "Last score: %.1f/10\n", conv.Critique.Score)
			for _, issue := range conv.Critique.Issues {
				fmt.Fprintf(os.Stderr, "  - [%s] %s\n", issue.Severity, issue.Description)
			}
		}
		return err
	}

	var val *pipeline.ValidationError
	if errors.As(err, &val) {
		fmt.Fprintln(os.Stderr, "Draft failed the brand check:")
		if val.Critique != nil {
			for _, issue := range val.Critique.Issues {
				fmt.Fprintf(os.Stderr, "  - %s\n", issue.Description)
			}
		}
		return err
	}

	return err
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&platformName, "platform", "p", "linkedin", "Target platform (linkedin, twitter, facebook, instagram, threads)")
	generateCmd.Flags().StringVarP(&goalName, "goal", "g", "engagement", "Content goal (engagement, authority, viral, conversion, education, storytelling)")
	generateCmd.Flags().StringVarP(&styleName, "style", "s", "professional", "Writing style (professional, casual, controversial, inspirational, analytical, humorous)")
	generateCmd.Flags().StringVarP(&languageCode, "language", "l", "en", "Content language (ISO code)")
	generateCmd.Flags().StringVar(&profileName, "profile", "", "Brand profile name (default from config)")

	generateCmd.Flags().BoolVar(&quick, "quick", false, "Single pass without the refinement loop")
	generateCmd.Flags().IntVar(&variantCount, "variations", 0, "Generate N quick drafts in different styles instead of one refined post")
	generateCmd.Flags().BoolVar(&asThread, "thread", false, "Also print the post as a numbered tweet thread")
	generateCmd.Flags().StringSliceVar(&localeTargets, "locales", nil, "Also translate the post into these languages")

	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Write the post to a file")
	generateCmd.Flags().StringVar(&htmlFile, "html", "", "Write an HTML preview to a file")
}
