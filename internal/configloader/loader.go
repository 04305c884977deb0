// Package configloader resolves the mdfix configuration. It implements
// XDG-compliant discovery, hierarchical merging, dotenv and environment
// overrides, markdownlint import, and validation against the rule registry.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/yaklabco/mdfix/internal/logging"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/lint/rules"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreMarkdownlint skips markdownlint config import.
	IgnoreMarkdownlint bool

	// IgnoreDotEnv skips the .env file in the working directory.
	IgnoreDotEnv bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Registry resolves rule keys. Defaults to the built-in rules.
	Registry *lint.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string

	// Imported is the markdownlint config that was imported, if any.
	Imported string
}

// LoadError reports a configuration that could not be read, parsed or
// validated.
type LoadError struct {
	// Path is the offending file, empty when the merged result is invalid.
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return "invalid configuration: " + e.Err.Error()
	}
	return fmt.Sprintf("load config %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load resolves the final configuration by merging all sources.
// Precedence (lowest to highest):
//  1. Defaults
//  2. User config ($XDG_CONFIG_HOME/mdfix/config.yaml)
//  3. Project config (.mdfix.yml upward search)
//  4. Imported markdownlint config, only without a project config
//  5. Explicit config file (opts.ExplicitPath)
//  6. .env file in the working directory (MDFIX_* keys)
//  7. Environment variables (MDFIX_*)
//  8. CLI flags (opts.CLIConfig)
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	registry := opts.Registry
	if registry == nil {
		registry = rules.NewRegistry()
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layer := func(path string) error {
		fileCfg, err := loadConfigFile(path)
		if err != nil {
			return &LoadError{Path: path, Err: err}
		}
		normalizeRuleKeys(fileCfg, registry, result)
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, path)
		logger.Debug("loaded config", logging.FieldPath, path)
		return nil
	}

	if !opts.IgnoreUserConfig && paths.User != "" {
		if err := layer(paths.User); err != nil {
			return nil, err
		}
	}

	hasProject := !opts.IgnoreProjectConfig && paths.Project != ""
	if hasProject {
		if err := layer(paths.Project); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreMarkdownlint && paths.Markdownlint != "" {
		cfg = merge(cfg, markdownlintLayer(ctx, paths, hasProject, registry, result))
	}

	if opts.ExplicitPath != "" {
		if err := layer(opts.ExplicitPath); err != nil {
			return nil, err
		}
	}

	if !opts.IgnoreDotEnv && paths.DotEnv != "" {
		if err := LoadFromDotEnv(cfg, paths.DotEnv); err != nil {
			return nil, &LoadError{Path: paths.DotEnv, Err: err}
		}
		result.LoadedFrom = append(result.LoadedFrom, paths.DotEnv)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, &LoadError{Err: err}
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	normalizeRuleKeys(cfg, registry, result)

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		errs := make([]error, 0, len(validation.Errors))
		for i := range validation.Errors {
			errs = append(errs, &validation.Errors[i])
		}
		return nil, &LoadError{Err: errors.Join(errs...)}
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// markdownlintLayer imports the markdownlint config when no project config
// exists. Problems with the file are warnings, never fatal.
func markdownlintLayer(
	ctx context.Context,
	paths *ConfigPaths,
	hasProject bool,
	registry *lint.Registry,
	result *LoadResult,
) *config.Config {
	path := paths.Markdownlint

	switch {
	case hasProject:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("both %s and %s exist; using %s", paths.Project, path, paths.Project))
		return nil
	case IsJavaScriptConfig(path):
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("JavaScript config %s cannot be imported; run 'mdfix init' to create an mdfix config", path))
		return nil
	}

	imported, err := ImportMarkdownlint(path, registry)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("skipping %s: %v", path, err))
		return nil
	}

	result.Imported = path
	result.Warnings = append(result.Warnings, imported.Warnings...)
	result.LoadedFrom = append(result.LoadedFrom, path)
	logging.FromContext(ctx).Debug("imported markdownlint config", logging.FieldPath, path)
	return imported.Config
}

// normalizeRuleKeys converts rule names and aliases to canonical IDs. When a
// rule is configured under several keys, the ID key wins, then names in
// reverse lexical order. Unknown keys are kept for validation to report.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	// Upper-case IDs sort first; visiting in reverse applies them last.
	slices.Sort(keys)
	slices.Reverse(keys)

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string) // canonical ID -> original key

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]
		id, ok := resolveRuleKey(registry, key)
		if !ok {
			normalized[key] = ruleCfg
			continue
		}

		if previous, exists := seen[id]; exists {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; using %q",
					previous, key, id, key))
		}
		seen[id] = key
		normalized[id] = ruleCfg
	}

	cfg.Rules = normalized
}
