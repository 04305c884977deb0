package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/configloader"
	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/lint/rules"
)

// migrateFlags holds the flags for the migrate command.
type migrateFlags struct {
	force  bool
	output string
}

func newMigrateCommand() *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "migrate [input]",
		Short: "Convert a markdownlint configuration to an mdfix config",
		Long: `Convert a markdownlint configuration file (.markdownlint.json, .jsonc,
.yaml or .yml) to an mdfix configuration file.

Without an input file the current directory is searched. Settings for the
structural checks that markdownlint can switch off are kept on, since
mdfix always runs them; MD013's line_length becomes max_line_length.

JavaScript configuration files (.markdownlint.cjs, .markdownlint.mjs) cannot
be converted.

Examples:
  mdfix migrate                       Convert the markdownlint config found here
  mdfix migrate .markdownlint.json    Convert a specific file
  mdfix migrate --output config.yml   Write to a custom output path`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runMigrate(cmd, input, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing output file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "Output file path")

	return cmd
}

func runMigrate(cmd *cobra.Command, inputPath string, flags *migrateFlags) error {
	logger := logging.FromContext(commandContext(cmd))

	if inputPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}

		inputPath = configloader.FindMarkdownlintConfig(cwd)
		if inputPath == "" {
			return &usageError{err: errors.New("no markdownlint configuration file found in current directory")}
		}

		logger.Info("found markdownlint config", logging.FieldPath, inputPath)
	}

	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file: %w", err)
	}

	absOutput, err := prepareOutput(cmd, flags.output, flags.force)
	if err != nil {
		return err
	}

	imported, err := configloader.ImportMarkdownlint(inputPath, rules.NewRegistry())
	if err != nil {
		return &configloader.LoadError{Path: inputPath, Err: err}
	}

	for _, warning := range imported.Warnings {
		logger.Warn(warning)
	}

	cfg := configloader.MergeAll(config.NewConfig(), imported.Config)
	content, err := cfg.ToYAMLWithHeader(configloader.ImportHeader(inputPath))
	if err != nil {
		return fmt.Errorf("serialize configuration: %w", err)
	}

	if err := os.WriteFile(absOutput, content, configFilePermissions); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}

	logger.Info("migration complete", logging.FieldInput, inputPath, logging.FieldOutput, flags.output)
	if len(imported.Warnings) > 0 {
		logger.Warn("review warnings above and verify the migrated configuration")
	}

	return nil
}
