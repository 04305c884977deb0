package rules

import "github.com/yaklabco/mdfix/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	// Whitespace rules
	registry.Register(NewTrailingSpacesRule()) // MD009
	registry.Register(NewHardTabsRule())       // MD010
	registry.Register(NewMultipleBlanksRule()) // MD012
	registry.Register(NewFinalNewlineRule())   // MD047

	// Heading rules
	registry.Register(NewNoMissingSpaceATXRule())    // MD018
	registry.Register(NewBlanksAroundHeadingsRule()) // MD022
	registry.Register(NewTrailingPunctuationRule())  // MD026

	// Code block rules
	registry.Register(NewBlanksAroundFencesRule()) // MD031
	registry.Register(NewFencedCodeLanguageRule()) // MD040

	// List rules
	registry.Register(NewBlanksAroundListsRule()) // MD032
}

// RegisterLegacyAliases registers markdownlint alias names that differ
// from the rule's canonical Name(), so older configuration files keep
// working.
func RegisterLegacyAliases(registry *lint.Registry) {
	registry.RegisterAlias("blanks-around-headers", "MD022")
}

// NewRegistry returns a registry holding every built-in rule and alias.
func NewRegistry() *lint.Registry {
	registry := lint.NewRegistry()
	RegisterAll(registry)
	RegisterLegacyAliases(registry)
	return registry
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterLegacyAliases(lint.DefaultRegistry)
}
