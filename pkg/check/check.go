// Package check ties the structural model, the rule table and the fixer
// together. A Checker validates documents, fixes them once on request and
// validates streamed output.
package check

import (
	"strings"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/doccontext"
	"github.com/yaklabco/mdfix/pkg/finding"
	"github.com/yaklabco/mdfix/pkg/fix"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/lint/rules"
	"github.com/yaklabco/mdfix/pkg/parser/goldmark"
	"github.com/yaklabco/mdfix/pkg/validate"
)

// Report is the result of validating one document.
type Report struct {
	Valid bool `json:"valid"`
	// Findings are ordered rule-table findings first, then structural
	// findings, then line length findings.
	Findings []finding.Finding `json:"findings"`
	Context  doccontext.Summary `json:"context"`
	// RuleErrors holds internal rule failures. They do not affect Valid.
	RuleErrors map[string]error `json:"-"`
}

// FixReport is the result of CheckAndFix.
type FixReport struct {
	OriginalFindings []finding.Finding  `json:"originalFindings"`
	Context          doccontext.Summary `json:"context"`
	FixedText        string             `json:"fixedText"`
	ResidualFindings []finding.Finding  `json:"residualFindings"`
	// Changed reports whether FixedText differs from the input.
	Changed bool `json:"changed"`
}

// Valid reports whether the fixed text has no findings left.
func (r FixReport) Valid() bool {
	return len(r.ResidualFindings) == 0
}

// Checker validates and fixes documents against one resolved
// configuration. It holds no per-document state and is safe for
// concurrent use.
type Checker struct {
	cfg      *config.Config
	engine   *lint.Engine
	resolved []lint.ResolvedRule
	fixer    *fix.Fixer
}

// Option configures a Checker.
type Option func(*options)

type options struct {
	registry *lint.Registry
	fixer    *fix.Fixer
}

// WithRegistry replaces the built-in rule table.
func WithRegistry(registry *lint.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

// WithFixer replaces the default fixer.
func WithFixer(f *fix.Fixer) Option {
	return func(o *options) {
		o.fixer = f
	}
}

// New resolves cfg against the rule table and returns a Checker. A nil cfg
// uses defaults. A malformed rule table yields a *lint.ConfigError.
func New(cfg *config.Config, opts ...Option) (*Checker, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	o := options{registry: rules.NewRegistry(), fixer: fix.New()}
	for _, opt := range opts {
		opt(&o)
	}

	resolved, err := lint.ResolveRules(o.registry, cfg)
	if err != nil {
		return nil, err
	}

	return &Checker{
		cfg:      cfg,
		engine:   lint.NewEngine(goldmark.New(string(cfg.Flavor)), o.registry),
		resolved: resolved,
		fixer:    o.fixer,
	}, nil
}

// Rules returns the rules the Checker runs, ordered by ID.
func (c *Checker) Rules() []lint.ResolvedRule {
	return c.resolved
}

// Check validates text. An empty or whitespace-only document yields a
// single EmptyDocument finding and no other checks run.
func (c *Checker) Check(text string) Report {
	if strings.TrimSpace(text) == "" {
		return Report{
			Valid:    false,
			Findings: []finding.Finding{finding.Empty()},
		}
	}

	// goldmark accepts any input, so Parse cannot fail here.
	doc, err := c.engine.Parse([]byte(text))
	if err != nil {
		return Report{Findings: []finding.Finding{finding.Empty()}}
	}

	result := c.engine.Run(doc, c.cfg, c.resolved)

	var findings []finding.Finding
	findings = append(findings, result.Findings()...)
	findings = append(findings, validate.Structure(doc.Context)...)
	findings = append(findings, validate.LineLength(doc.Lines, c.cfg.LineLimit())...)

	report := Report{
		Valid:    len(findings) == 0,
		Findings: findings,
		Context:  doc.Context.Summary(),
	}
	if len(result.RuleErrors) > 0 {
		report.RuleErrors = result.RuleErrors
	}
	return report
}

// CheckAndFix validates text and, when it is invalid, fixes it once and
// validates the result. The fixer never runs a second time, even when
// findings remain.
func (c *Checker) CheckAndFix(text string) FixReport {
	original := c.Check(text)
	if original.Valid {
		return FixReport{
			OriginalFindings: original.Findings,
			Context:          original.Context,
			FixedText:        text,
		}
	}

	fixed := c.fixer.Fix(text)
	residual := c.Check(fixed)

	return FixReport{
		OriginalFindings: original.Findings,
		Context:          original.Context,
		FixedText:        fixed,
		ResidualFindings: residual.Findings,
		Changed:          fixed != text,
	}
}
