package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdfix/internal/configloader"
	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/config"
)

// commandContext returns the command's context, or a background one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for a command run from the working
// directory. Load warnings are logged.
func loadConfig(ctx context.Context, flags *globalFlags, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}

	if flags.configPath != "" {
		logger.Debug("using explicit config", logging.FieldConfig, flags.configPath)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", err
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldPaths, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration resolved",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, cfg.Format,
	)

	return cfg, workDir, nil
}
