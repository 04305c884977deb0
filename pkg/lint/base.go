package lint

import "github.com/yaklabco/mdfix/pkg/config"

// BaseRule provides a default implementation of the Rule interface.
// Embed this in rule implementations and override methods as needed.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	id   string
	name string
	desc string
	tags []string
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(id, name, desc string, tags []string) BaseRule {
	return BaseRule{
		id:   id,
		name: name,
		desc: desc,
		tags: tags,
	}
}

// ID returns the unique identifier for this rule.
func (r *BaseRule) ID() string {
	return r.id
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns the rule description.
func (r *BaseRule) Description() string {
	return r.desc
}

// DefaultEnabled returns true. Override to change the default.
func (r *BaseRule) DefaultEnabled() bool {
	return true
}

// DefaultSeverity returns config.SeverityError, the severity markdownlint
// reports everything at. Override to change the default.
func (r *BaseRule) DefaultSeverity() config.Severity {
	return config.SeverityError
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// Apply must be overridden by concrete rule implementations.
func (r *BaseRule) Apply(_ *RuleContext) ([]Diagnostic, error) {
	return nil, nil
}

// Diag returns a Diagnostic for this rule at line and column.
func (r *BaseRule) Diag(line, column int, message string) Diagnostic {
	return Diagnostic{
		RuleID:   r.id,
		RuleName: r.name,
		Message:  message,
		Line:     line,
		Column:   column,
	}
}
