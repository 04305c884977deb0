package lint

import (
	"fmt"
	"slices"

	"github.com/yaklabco/mdfix/pkg/config"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Enabled indicates whether the rule should be run.
	Enabled bool

	// Severity is the resolved severity for diagnostics from this rule.
	Severity config.Severity

	// Config is the rule-specific configuration (may be nil).
	Config *config.RuleConfig
}

// ResolveRules determines which rules to run based on registry and config.
// Returns only enabled rules, ordered by ID. Rule keys in cfg.Rules may be
// IDs, names or aliases. A severity outside error, warning and info yields
// a *ConfigError.
func ResolveRules(registry *Registry, cfg *config.Config) ([]ResolvedRule, error) {
	byID, err := ruleConfigsByID(registry, cfg)
	if err != nil {
		return nil, err
	}

	var resolved []ResolvedRule
	for _, rule := range registry.Rules() {
		rr, err := resolveRule(rule, cfg, byID)
		if err != nil {
			return nil, err
		}
		if rr.Enabled {
			resolved = append(resolved, rr)
		}
	}

	return resolved, nil
}

// ruleConfigsByID re-keys cfg.Rules by canonical rule ID. Unknown keys are
// ignored; configloader warns about them.
func ruleConfigsByID(registry *Registry, cfg *config.Config) (map[string]config.RuleConfig, error) {
	byID := make(map[string]config.RuleConfig)
	if cfg == nil {
		return byID, nil
	}

	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	// Upper-case IDs sort before names. Visiting in reverse applies them
	// last, so an ID entry wins over a name entry for the same rule.
	slices.Sort(keys)
	slices.Reverse(keys)

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]
		if ruleCfg.Severity != nil && !config.Severity(*ruleCfg.Severity).IsValid() {
			return nil, &ConfigError{Key: key, Err: fmt.Errorf("%w: %q", ErrInvalidSeverity, *ruleCfg.Severity)}
		}
		id, _, ok := registry.Resolve(key)
		if !ok {
			continue
		}
		byID[id] = ruleCfg
	}

	return byID, nil
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(rule Rule, cfg *config.Config, byID map[string]config.RuleConfig) (ResolvedRule, error) {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
	}

	if cfg == nil {
		return rr, nil
	}

	if cfg.SeverityDefault != "" {
		sev := config.Severity(cfg.SeverityDefault)
		if !sev.IsValid() {
			return rr, &ConfigError{
				Key: "severity_default",
				Err: fmt.Errorf("%w: %q", ErrInvalidSeverity, cfg.SeverityDefault),
			}
		}
		rr.Severity = sev
	}

	// Apply rule-specific config.
	if ruleCfg, ok := byID[rule.ID()]; ok {
		rr.Config = &ruleCfg

		if ruleCfg.Enabled != nil {
			rr.Enabled = *ruleCfg.Enabled
		}
		if ruleCfg.Severity != nil {
			rr.Severity = config.Severity(*ruleCfg.Severity)
		}
	}

	// Explicit enable/disable from the CLI wins over the file.
	if slices.ContainsFunc(cfg.EnableRules, matcher(rule)) {
		rr.Enabled = true
	}
	if slices.ContainsFunc(cfg.DisableRules, matcher(rule)) {
		rr.Enabled = false
	}

	return rr, nil
}

// matcher reports whether a CLI rule key names rule.
func matcher(rule Rule) func(string) bool {
	return func(key string) bool {
		return key == rule.ID() || key == rule.Name()
	}
}
