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
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"postsmith/internal"
	"postsmith/internal/campaign"
)

var (
	campaignPlatforms []string
	campaignGoal      string
	campaignStyle     string
	campaignLanguage  string
	campaignProfile   string
)

var campaignCmd = &cobra.Command{
	Use:   "campaign <topic>",
	Short: "Generate one topic for several platforms at once",
	Long: `Runs the full pipeline for the topic on every platform concurrently,
each with platform-appropriate structure and length. One platform failing
does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := strings.Join(args, " ")
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		platforms := make([]internal.Platform, 0, len(campaignPlatforms))
		for _, name := range campaignPlatforms {
			p, err := internal.ParsePlatform(name)
			if err != nil {
				return err
			}
			platforms = append(platforms, p)
		}
		goal, err := internal.ParseGoal(campaignGoal)
		if err != nil {
			return err
		}
		style, err := internal.ParseStyle(campaignStyle)
		if err != nil {
			return err
		}

		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if campaignProfile == "" {
			campaignProfile = cfg.Brand.DefaultProfile
		}
		profile, err := db.LoadProfile(ctx, campaignProfile)
		if err != nil {
			return fmt.Errorf("failed to load brand profile: %w", err)
		}

		router, err := buildRouter(cfg)
		if err != nil {
			return err
		}
		orch := buildOrchestrator(cfg, router)

		brief := campaign.Brief{
			Topic:    topic,
			Goal:     goal,
			Style:    style,
			Language: campaignLanguage,
			Profile:  campaignProfile,
		}
		results := campaign.Generate(ctx, orch, brief, platforms, profile, "")

		failed := 0
		for _, r := range results {
			fmt.Printf("=== %s ===\n", r.Platform)
			if r.Err != nil {
				failed++
				fmt.Printf("FAILED: %v\n\n", r.Err)
				continue
			}
			fmt.Printf("%s\n\n", r.Run.Final.Content)

			score := 0.0
			if r.Run.Critique != nil {
				score = r.Run.Critique.Score
			}
			_ = db.SaveRequest(ctx, r.Run.Request)
			_ = db.SaveArtifacts(ctx, r.Run.Request.ID, r.Run.Final)
			if _, err := db.AddHistory(ctx, string(r.Platform), topic, r.Run.Final.Content, score); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to record history: %v\n", err)
			}
		}

		fmt.Fprintf(os.Stderr, "Generated %d/%d platforms\n", len(results)-failed, len(results))
		if failed == len(results) {
			return fmt.Errorf("all platforms failed")
		}
		return nil
	},
}

var campaignSeriesCmd = &cobra.Command{
	Use:   "series <file>",
	Short: "Run a multi-post campaign defined in a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		series, err := campaign.LoadSeries(args[0])
		if err != nil {
			return err
		}

		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if campaignProfile == "" {
			campaignProfile = cfg.Brand.DefaultProfile
		}
		profile, err := db.LoadProfile(ctx, campaignProfile)
		if err != nil {
			return fmt.Errorf("failed to load brand profile: %w", err)
		}

		router, err := buildRouter(cfg)
		if err != nil {
			return err
		}
		orch := buildOrchestrator(cfg, router)

		batches, err := campaign.RunSeries(ctx, orch, series, profile, "")
		if err != nil {
			return err
		}

		for i, batch := range batches {
			fmt.Printf("### Post %d: %s\n\n", i+1, series.Posts[i].Topic)
			for _, r := range batch {
				fmt.Printf("=== %s ===\n", r.Platform)
				if r.Err != nil {
					fmt.Printf("FAILED: %v\n\n", r.Err)
					continue
				}
				fmt.Printf("%s\n\n", r.Run.Final.Content)
				_ = db.SaveRequest(ctx, r.Run.Request)
				_ = db.SaveArtifacts(ctx, r.Run.Request.ID, r.Run.Final)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(campaignCmd)
	campaignCmd.AddCommand(campaignSeriesCmd)

	campaignCmd.PersistentFlags().StringVar(&campaignProfile, "profile", "", "Brand profile name (default from config)")
	campaignCmd.Flags().StringSliceVar(&campaignPlatforms, "platforms", []string{"linkedin", "twitter"}, "Platforms to generate for (comma-separated)")
	campaignCmd.Flags().StringVarP(&campaignGoal, "goal", "g", "engagement", "Content goal")
	campaignCmd.Flags().StringVarP(&campaignStyle, "style", "s", "professional", "Writing style")
	campaignCmd.Flags().StringVarP(&campaignLanguage, "language", "l", "en", "Content language (ISO code)")
}
