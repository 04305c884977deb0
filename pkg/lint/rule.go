// Package lint provides the configurable rule table for mdfix: rule
// definitions, the registry, configuration resolution and the engine that
// runs enabled rules over a parsed document.
package lint

import "github.com/yaklabco/mdfix/pkg/config"

// Diagnostic is a single issue reported by a rule.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string

	// RuleName is the human-readable name of the rule (e.g., "no-trailing-spaces").
	RuleName string

	// Description is the rule description, filled in by the engine.
	Description string

	// Message is optional detail about this occurrence. The rule description
	// is the primary message.
	Message string

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity

	// Line is the 1-based line number of the issue.
	Line int

	// Column is the 1-based column of the offending text, or 0 when the
	// issue concerns the whole line.
	Column int
}

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "MD009").
	ID() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns the message reported for each violation.
	Description() string

	// DefaultEnabled returns whether the rule is enabled by default.
	DefaultEnabled() bool

	// DefaultSeverity returns the default severity for this rule.
	DefaultSeverity() config.Severity

	// Tags returns categorization tags for this rule (e.g., ["headings"]).
	Tags() []string

	// Apply executes the rule against the given context and returns diagnostics.
	// Rules return an error only for internal failures, never for violations.
	Apply(ctx *RuleContext) ([]Diagnostic, error)
}
