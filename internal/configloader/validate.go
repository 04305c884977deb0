package configloader

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sahilm/fuzzy"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.MD009.severity").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues such as unknown rule keys.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	config.BackupModeSidecar: true,
	config.BackupModeNone:    true,
}

// Validate checks a configuration for errors and warnings. Rule keys are
// checked against registry; unknown keys produce a warning carrying the
// closest known key, if any.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.addError("flavor", cfg.Flavor,
			fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor))
	}

	if cfg.SeverityDefault != "" && !config.Severity(cfg.SeverityDefault).IsValid() {
		result.addError("severity_default", cfg.SeverityDefault,
			fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", cfg.SeverityDefault))
	}

	if cfg.MaxLineLength < 0 {
		result.addError("max_line_length", cfg.MaxLineLength, "max_line_length must be >= 0 (0 means default)")
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			fmt.Sprintf("invalid format %q; must be one of: text, json, wire, diff", cfg.Format))
	}

	if cfg.RuleFormat != "" && !cfg.RuleFormat.IsValid() {
		result.addError("rule_format", cfg.RuleFormat,
			fmt.Sprintf("invalid rule format %q; must be one of: name, id, combined", cfg.RuleFormat))
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.addError("backups.mode", cfg.Backups.Mode,
			fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode))
	}

	validateRules(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, registry *lint.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

func (r *ValidationResult) addError(field string, value any, msg string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: msg})
}

func (r *ValidationResult) addWarning(field string, value any, msg string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: msg})
}

func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]
		if registry != nil {
			if _, _, ok := registry.Resolve(key); !ok {
				result.addWarning("rules."+key, key, unknownRuleMessage(registry, key))
			}
		}

		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			result.addError("rules."+key+".severity", *ruleCfg.Severity,
				fmt.Sprintf("invalid severity %q; must be one of: error, warning, info", *ruleCfg.Severity))
		}
	}

	if registry == nil {
		return
	}
	for _, key := range cfg.EnableRules {
		if _, _, ok := registry.Resolve(key); !ok {
			result.addWarning("enable", key, unknownRuleMessage(registry, key))
		}
	}
	for _, key := range cfg.DisableRules {
		if _, _, ok := registry.Resolve(key); !ok {
			result.addWarning("disable", key, unknownRuleMessage(registry, key))
		}
	}
}

func unknownRuleMessage(registry *lint.Registry, key string) string {
	if suggestion := SuggestRule(registry, key); suggestion != "" {
		return fmt.Sprintf("unknown rule %q; did you mean %q?", key, suggestion)
	}
	return fmt.Sprintf("unknown rule %q; it will be ignored", key)
}

// SuggestRule returns the registered rule ID, name or alias that best
// fuzzy-matches key, or "" when nothing matches.
func SuggestRule(registry *lint.Registry, key string) string {
	if registry == nil || key == "" {
		return ""
	}
	matches := fuzzy.Find(key, registry.Keys())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern,
				fmt.Sprintf("invalid glob pattern %q", pattern))
		}
	}
}
