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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"postsmith/internal"
	"postsmith/internal/store"
)

// platformFilter canonicalizes the --platform flag, accepting the same
// aliases as generate.
func platformFilter() (string, error) {
	if historyPlatform == "" {
		return "", nil
	}
	p, err := internal.ParsePlatform(historyPlatform)
	if err != nil {
		return "", err
	}
	return string(p), nil
}

var (
	historyPlatform string
	historyLimit    int
	feedbackReason  string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect generated posts and record feedback",
	Long: `List past posts, show statistics, and record feedback. Feedback feeds
back into generation: liked posts become style examples, disliked posts
become anti-examples, and repeated adjustments become standing preferences.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		platform, err := platformFilter()
		if err != nil {
			return err
		}
		entries, err := db.RecentHistory(context.Background(), historyLimit, platform)
		if err != nil {
			return fmt.Errorf("failed to list history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No posts generated yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPLATFORM\tSCORE\tCREATED\tTOPIC")
		for _, e := range entries {
			score := "-"
			if e.Score.Valid {
				score = fmt.Sprintf("%.1f", e.Score.Float64)
			}
			topic := e.Topic
			if len(topic) > 40 {
				topic = topic[:37] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.Platform, score, e.CreatedAt.Format("2006-01-02 15:04"), topic)
		}
		return w.Flush()
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show generation statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		stats, err := db.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		fmt.Printf("Total posts:   %d\n", stats.TotalPosts)
		fmt.Printf("Average score: %.1f\n", stats.AverageScore)
		for platform, count := range stats.PerPlatform {
			fmt.Printf("  %-12s %d\n", platform+":", count)
		}
		return nil
	},
}

var historyFeedbackCmd = &cobra.Command{
	Use:   "feedback <good|bad>",
	Short: "Record feedback on the most recent post",
	Long: `Records whether the most recent post worked. Use --reason with bad
feedback so the agents learn what to avoid.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var kind store.FeedbackKind
		switch strings.ToLower(args[0]) {
		case "good":
			kind = store.FeedbackPositive
		case "bad":
			kind = store.FeedbackNegative
		default:
			return fmt.Errorf("feedback must be good or bad, got %q", args[0])
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		platform, err := platformFilter()
		if err != nil {
			return err
		}
		ctx := context.Background()
		entries, err := db.RecentHistory(ctx, 1, platform)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("no posts to give feedback on")
		}

		last := entries[0]
		if err := db.AddFeedback(ctx, kind, last.Platform, last.Content, feedbackReason); err != nil {
			return fmt.Errorf("failed to record feedback: %w", err)
		}
		fmt.Printf("Recorded %s feedback on %s\n", args[0], last.ID)
		return nil
	},
}

var historyAdjustCmd = &cobra.Command{
	Use:   "adjust <type>",
	Short: "Record a standing adjustment request",
	Long: `Records an adjustment like "shorter" or "less_emoji". An adjustment
requested twice or more becomes a standing preference in every prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		platform, err := platformFilter()
		if err != nil {
			return err
		}
		adjustment := strings.ToLower(strings.TrimSpace(args[0]))
		if err := db.AddFeedback(context.Background(), store.FeedbackAdjustment, platform, adjustment, feedbackReason); err != nil {
			return fmt.Errorf("failed to record adjustment: %w", err)
		}
		fmt.Printf("Recorded adjustment: %s\n", adjustment)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.PersistentFlags().StringVar(&historyPlatform, "platform", "", "Filter by platform")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to list")
	historyFeedbackCmd.Flags().StringVar(&feedbackReason, "reason", "", "Why the post did or did not work")
	historyAdjustCmd.Flags().StringVar(&feedbackReason, "reason", "", "Details for the adjustment")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyFeedbackCmd)
	historyCmd.AddCommand(historyAdjustCmd)
}
