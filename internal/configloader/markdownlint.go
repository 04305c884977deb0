package configloader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/lint"
)

// ImportResult is the outcome of reading a markdownlint config file.
type ImportResult struct {
	// Config holds only what the markdownlint file sets: rule entries and,
	// from MD013, max_line_length. It is meant to be merged over defaults.
	Config *config.Config

	// Warnings contains settings that could not be carried over.
	Warnings []string

	// SourcePath is the path to the markdownlint config.
	SourcePath string
}

// ImportMarkdownlint reads a markdownlint JSON, JSONC or YAML config and
// converts it to an mdfix configuration. Rule keys are resolved through
// registry; tags expand to every registered rule carrying them.
func ImportMarkdownlint(path string, registry *lint.Registry) (*ImportResult, error) {
	if IsJavaScriptConfig(path) {
		return nil, fmt.Errorf("cannot import JavaScript config %q; run 'mdfix init' to create an mdfix config", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	if IsJSONConfig(path) {
		if err := parseJSONC(content, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	} else if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	result := &ImportResult{
		Config:     &config.Config{Rules: make(map[string]config.RuleConfig)},
		SourcePath: path,
	}

	imp := importer{registry: registry, result: result}
	imp.processSpecialKeys(raw)

	// Tags first so a rule named explicitly overrides its tag.
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	var ruleKeys []string
	for _, key := range keys {
		if ids := tagRules(registry, key); len(ids) > 0 {
			imp.setEnabled(ids, valueToBool(raw[key]))
			continue
		}
		ruleKeys = append(ruleKeys, key)
	}
	for _, key := range ruleKeys {
		imp.processRuleKey(key, raw[key])
	}

	return result, nil
}

type importer struct {
	registry *lint.Registry
	result   *ImportResult
}

func (imp *importer) warn(format string, args ...any) {
	imp.result.Warnings = append(imp.result.Warnings, fmt.Sprintf(format, args...))
}

func (imp *importer) processSpecialKeys(raw map[string]any) {
	if defaultVal, ok := raw["default"].(bool); ok {
		if !defaultVal {
			imp.setEnabled(imp.registry.IDs(), false)
		}
		delete(raw, "default")
	}

	if extends, ok := raw["extends"].(string); ok {
		imp.warn("'extends: %s' is not supported; merge the base config manually", extends)
		delete(raw, "extends")
	}

	delete(raw, "$schema")
}

func (imp *importer) setEnabled(ids []string, enabled bool) {
	for _, id := range ids {
		ruleCfg := imp.result.Config.Rules[id]
		ruleCfg.Enabled = &enabled
		imp.result.Config.Rules[id] = ruleCfg
	}
}

func (imp *importer) processRuleKey(key string, value any) {
	if id, ok := resolveRuleKey(imp.registry, key); ok {
		imp.result.Config.Rules[id] = convertRuleValue(value)
		return
	}

	if id, ok := structuralRuleID(key); ok {
		imp.processStructuralRule(id, key, value)
		return
	}

	if suggestion := SuggestRule(imp.registry, key); suggestion != "" {
		imp.warn("unknown key %q (did you mean %q?); skipping", key, suggestion)
		return
	}
	imp.warn("unknown key %q; skipping", key)
}

func (imp *importer) processStructuralRule(id, key string, value any) {
	if !valueToBool(value) {
		imp.warn("%s (%s) is a structural check and cannot be disabled", key, id)
		return
	}
	if id != lineLengthRule {
		return
	}
	opts, ok := value.(map[string]any)
	if !ok {
		return
	}
	if limit, ok := toInt(opts["line_length"]); ok {
		imp.result.Config.MaxLineLength = limit
	}
}

// parseJSONC parses JSON, stripping comments when plain parsing fails.
func parseJSONC(content []byte, target any) error {
	if err := json.Unmarshal(content, target); err == nil {
		return nil
	}

	if err := json.Unmarshal(stripJSONComments(content), target); err != nil {
		return fmt.Errorf("unmarshal stripped JSON: %w", err)
	}
	return nil
}

// stripJSONComments removes // and /* */ comments outside strings.
func stripJSONComments(content []byte) []byte {
	var result []byte
	inString := false
	inSingleComment := false
	inMultiComment := false

	for idx := 0; idx < len(content); idx++ {
		char := content[idx]

		if inSingleComment {
			if char == '\n' {
				inSingleComment = false
				result = append(result, char)
			}
			continue
		}

		if inMultiComment {
			if char == '*' && idx+1 < len(content) && content[idx+1] == '/' {
				inMultiComment = false
				idx++
			}
			continue
		}

		if inString {
			result = append(result, char)
			if char == '\\' && idx+1 < len(content) {
				idx++
				result = append(result, content[idx])
			} else if char == '"' {
				inString = false
			}
			continue
		}

		if char == '"' {
			inString = true
			result = append(result, char)
			continue
		}

		if char == '/' && idx+1 < len(content) {
			switch content[idx+1] {
			case '/':
				inSingleComment = true
				idx++
				continue
			case '*':
				inMultiComment = true
				idx++
				continue
			}
		}

		result = append(result, char)
	}

	return result
}

// convertRuleValue converts a markdownlint rule value to a RuleConfig.
// An object enables the rule with those options; null disables it.
func convertRuleValue(value any) config.RuleConfig {
	enabled := valueToBool(value)
	cfg := config.RuleConfig{Enabled: &enabled}

	if opts, ok := value.(map[string]any); ok && len(opts) > 0 {
		cfg.Options = make(map[string]any, len(opts))
		for key, optVal := range opts {
			cfg.Options[key] = optVal
		}
	}

	return cfg
}

func valueToBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case nil:
		return false
	default:
		return true
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// ImportHeader returns the header comment for a config written from an
// imported markdownlint file.
func ImportHeader(sourcePath string) string {
	return fmt.Sprintf("%s\n# Imported from: %s\n", config.DefaultTemplateHeader(), filepath.Base(sourcePath))
}
