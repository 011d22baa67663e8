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
	"os"

	"github.com/spf13/cobra"

	"postsmith/internal/logging"
)

var version = "0.3.0"

var (
	cfgFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "postsmith",
	Short: "Multi-agent social media content studio",
	Long: `Generates social media posts through a pipeline of specialised agents:
a strategist plans the angle, a copywriter drafts, a critic scores, an editor
revises, and a brand guardian signs off. Drafts loop through critique and
revision until they clear the quality bar or the revision budget runs out.

Use "postsmith generate --help" for generation options.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Setup(logLevel)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", defaultConfigPath(), "Path to the config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "postsmith.yaml"
	}
	return home + "/.postsmith/config.yaml"
}
