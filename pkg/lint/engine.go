package lint

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/finding"
)

// Result contains the outcome of running the rule table over one document.
type Result struct {
	// Diagnostics contains all issues found, ordered by line, column and
	// rule ID.
	Diagnostics []Diagnostic

	// RuleErrors contains internal failures keyed by rule ID. A failing
	// rule does not stop the others.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (r *Result) HasIssues() bool {
	return len(r.Diagnostics) > 0
}

// Findings converts the diagnostics to LintRule findings. The rule
// description is the message and the diagnostic message is the detail.
func (r *Result) Findings() []finding.Finding {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	out := make([]finding.Finding, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		out = append(out, finding.Finding{
			Kind:        finding.LintRule,
			Severity:    finding.Severity(d.Severity),
			Line:        d.Line,
			Column:      d.Column,
			RuleID:      d.RuleID,
			RuleName:    d.RuleName,
			Description: d.Description,
			Detail:      d.Message,
		})
	}
	return out
}

// Engine coordinates parsing and rule execution.
type Engine struct {
	// Parser parses Markdown into a goldmark AST.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// Parse parses content into a Document.
func (e *Engine) Parse(content []byte) (*Document, error) {
	root, err := e.Parser.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return NewDocument(content, root), nil
}

// Lint parses content and runs every enabled rule over it. The only errors
// are parse failures and a *ConfigError for a malformed rule table.
func (e *Engine) Lint(content []byte, cfg *config.Config) (*Result, error) {
	resolved, err := ResolveRules(e.Registry, cfg)
	if err != nil {
		return nil, err
	}

	doc, err := e.Parse(content)
	if err != nil {
		return nil, err
	}

	return e.Run(doc, cfg, resolved), nil
}

// Run executes resolved rules against doc.
func (e *Engine) Run(doc *Document, cfg *config.Config, resolved []ResolvedRule) *Result {
	result := &Result{
		RuleErrors: make(map[string]error),
	}

	for _, rr := range resolved {
		ruleCtx := NewRuleContext(doc, cfg, rr.Config)
		ruleCtx.Registry = e.Registry

		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			diags[i].Severity = rr.Severity
			if diags[i].RuleID == "" {
				diags[i].RuleID = rr.Rule.ID()
			}
			if diags[i].RuleName == "" {
				diags[i].RuleName = rr.Rule.Name()
			}
			diags[i].Description = rr.Rule.Description()
		}

		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	slices.SortStableFunc(result.Diagnostics, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Line, b.Line),
			cmp.Compare(a.Column, b.Column),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})

	return result
}
