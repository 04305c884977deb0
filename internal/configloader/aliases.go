package configloader

import (
	"slices"
	"strings"

	"github.com/yaklabco/mdfix/pkg/lint"
)

// structuralRules maps markdownlint keys to the rule IDs whose checks the
// structural validator performs instead of the rule table. These rules are
// always on.
//
//nolint:gochecknoglobals // Read-only lookup table.
var structuralRules = map[string]string{
	"MD001":                "MD001",
	"heading-increment":    "MD001",
	"header-increment":     "MD001",
	"MD004":                "MD004",
	"ul-style":             "MD004",
	"MD013":                "MD013",
	"line-length":          "MD013",
	"MD024":                "MD024",
	"no-duplicate-heading": "MD024",
	"no-duplicate-header":  "MD024",
	"MD025":                "MD025",
	"single-title":         "MD025",
	"single-h1":            "MD025",
}

// lineLengthRule is the markdownlint rule whose line_length option maps to
// max_line_length.
const lineLengthRule = "MD013"

// structuralRuleID returns the markdownlint rule ID for key when the check
// is structural.
func structuralRuleID(key string) (string, bool) {
	if id, ok := structuralRules[key]; ok {
		return id, true
	}
	id, ok := structuralRules[strings.ToUpper(key)]
	return id, ok
}

// resolveRuleKey resolves a rule ID, name or alias. IDs are matched
// case-insensitively, as markdownlint does.
func resolveRuleKey(registry *lint.Registry, key string) (string, bool) {
	if id, _, ok := registry.Resolve(key); ok {
		return id, true
	}
	id, _, ok := registry.Resolve(strings.ToUpper(key))
	return id, ok
}

// tagRules returns the IDs of registered rules carrying tag, ordered by ID.
func tagRules(registry *lint.Registry, tag string) []string {
	var ids []string
	for _, rule := range registry.Rules() {
		if slices.Contains(rule.Tags(), tag) {
			ids = append(ids, rule.ID())
		}
	}
	return ids
}
