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
	"strings"

	"github.com/spf13/cobra"

	"postsmith/internal/brand"
	"postsmith/internal/store"
)

var brandProfileName string

var brandCmd = &cobra.Command{
	Use:   "brand",
	Short: "Manage brand profiles",
	Long:  `Show and edit the brand profile the pipeline agents write against.`,
}

// withProfile loads the selected profile, applies fn, and saves it back when
// fn reports a change.
func withProfile(fn func(ctx context.Context, db *store.Store, p *brand.Profile) (bool, error)) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if brandProfileName == "" {
		brandProfileName = cfg.Brand.DefaultProfile
	}
	profile, err := db.LoadProfile(ctx, brandProfileName)
	if err != nil {
		return fmt.Errorf("failed to load brand profile: %w", err)
	}

	changed, err := fn(ctx, db, profile)
	if err != nil {
		return err
	}
	if changed {
		if err := db.SaveProfile(ctx, brandProfileName, profile); err != nil {
			return fmt.Errorf("failed to save brand profile: %w", err)
		}
	}
	return nil
}

var brandShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the brand profile as the agents see it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(func(_ context.Context, _ *store.Store, p *brand.Profile) (bool, error) {
			fmt.Println(p.PromptContext())
			return false, nil
		})
	},
}

var brandListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored brand profiles",
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

		names, err := db.ListProfiles(context.Background())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Println("No profiles stored yet.")
			return nil
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

// settable profile fields by CLI name.
var brandFields = map[string]func(p *brand.Profile, value string){
	"name":           func(p *brand.Profile, v string) { p.Name = v },
	"tagline":        func(p *brand.Profile, v string) { p.Tagline = v },
	"tone":           func(p *brand.Profile, v string) { p.ToneOfVoice = v },
	"formality":      func(p *brand.Profile, v string) { p.FormalityLevel = v },
	"audience":       func(p *brand.Profile, v string) { p.TargetAudience = v },
	"emoji-policy":   func(p *brand.Profile, v string) { p.EmojiPolicy = v },
	"hashtag-policy": func(p *brand.Profile, v string) { p.HashtagPolicy = v },
}

var brandSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Set a profile field",
	Long: `Set a brand profile field. Fields: name, tagline, tone, formality,
audience, emoji-policy, hashtag-policy.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field := strings.ToLower(args[0])
		value := strings.Join(args[1:], " ")

		setter, ok := brandFields[field]
		if !ok {
			return fmt.Errorf("unknown field %q", field)
		}
		return withProfile(func(_ context.Context, _ *store.Store, p *brand.Profile) (bool, error) {
			setter(p, value)
			fmt.Printf("Set %s = %q\n", field, value)
			return true, nil
		})
	},
}

var brandForbidCmd = &cobra.Command{
	Use:   "forbid <word>...",
	Short: "Add words to the forbidden list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(func(_ context.Context, _ *store.Store, p *brand.Profile) (bool, error) {
			changed := false
			for _, w := range args {
				if p.AddForbiddenWord(w) {
					changed = true
					fmt.Printf("Forbidden: %s\n", strings.ToLower(w))
				} else {
					fmt.Printf("Already forbidden: %s\n", strings.ToLower(w))
				}
			}
			return changed, nil
		})
	},
}

var brandUnforbidCmd = &cobra.Command{
	Use:   "unforbid <word>...",
	Short: "Remove words from the forbidden list",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withProfile(func(_ context.Context, _ *store.Store, p *brand.Profile) (bool, error) {
			changed := false
			for _, w := range args {
				if p.RemoveForbiddenWord(w) {
					changed = true
					fmt.Printf("Allowed again: %s\n", strings.ToLower(w))
				} else {
					fmt.Printf("Was not forbidden: %s\n", strings.ToLower(w))
				}
			}
			return changed, nil
		})
	},
}

func init() {
	rootCmd.AddCommand(brandCmd)

	brandCmd.PersistentFlags().StringVar(&brandProfileName, "profile", "", "Profile name (default from config)")

	brandCmd.AddCommand(brandShowCmd)
	brandCmd.AddCommand(brandListCmd)
	brandCmd.AddCommand(brandSetCmd)
	brandCmd.AddCommand(brandForbidCmd)
	brandCmd.AddCommand(brandUnforbidCmd)
}
