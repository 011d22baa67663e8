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

	"github.com/spf13/cobra"

	"postsmith/internal"
)

var (
	regenSection     string
	regenInstruction string
	regenPlatform    string
	regenProfile     string
	regenOutput      string
)

var regenCmd = &cobra.Command{
	Use:   "regen <file>",
	Short: "Regenerate one section of an existing post",
	Long: `Rewrites one section (hook, body, cta) of a post stored in a file,
leaving the rest untouched. Use --instruction for custom guidance.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		platform, err := internal.ParsePlatform(regenPlatform)
		if err != nil {
			return err
		}

		db, err := openStore(cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		if regenProfile == "" {
			regenProfile = cfg.Brand.DefaultProfile
		}
		profile, err := db.LoadProfile(ctx, regenProfile)
		if err != nil {
			return fmt.Errorf("failed to load brand profile: %w", err)
		}

		router, err := buildRouter(cfg)
		if err != nil {
			return err
		}
		orch := buildOrchestrator(cfg, router)

		out, err := orch.RegenerateSection(ctx, string(data), regenSection, platform, profile, regenInstruction)
		if err != nil {
			return err
		}

		if regenOutput != "" {
			return writeOutput(regenOutput, out)
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(regenCmd)

	regenCmd.Flags().StringVar(&regenSection, "section", "hook", "Section to regenerate (hook, body, cta)")
	regenCmd.Flags().StringVar(&regenInstruction, "instruction", "", "Extra guidance for the rewrite")
	regenCmd.Flags().StringVarP(&regenPlatform, "platform", "p", "linkedin", "Target platform")
	regenCmd.Flags().StringVar(&regenProfile, "profile", "", "Brand profile name (default from config)")
	regenCmd.Flags().StringVarP(&regenOutput, "output", "o", "", "Write the result to a file")
}
