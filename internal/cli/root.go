// Package cli provides the Cobra command structure for mdfix.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
}

// NewRootCommand creates the root mdfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdfix",
		Short: "Validate and repair the structure of Markdown documents",
		Long: `mdfix validates the structure of Markdown documents and repairs what it can.

It checks heading hierarchy, duplicate headings, list marker consistency,
line length, fenced code languages and a table of markdownlint-compatible
rules. With --fix it rewrites documents once, safely, and reports anything
that still needs manual attention.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newCheckCommand(flags))
	rootCmd.AddCommand(newPreviewCommand(flags))
	rootCmd.AddCommand(newRulesCommand(flags))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	installHelp(rootCmd, &flags.color)

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	return rootCmd
}
