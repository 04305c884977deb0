package rules

import "github.com/yaklabco/mdfix/pkg/lint"

// BlanksAroundFencesRule checks that fenced code blocks are set off by
// blank lines.
type BlanksAroundFencesRule struct {
	lint.BaseRule
}

// NewBlanksAroundFencesRule creates a new blanks around fences rule.
func NewBlanksAroundFencesRule() *BlanksAroundFencesRule {
	return &BlanksAroundFencesRule{
		BaseRule: lint.NewBaseRule(
			"MD031",
			"blanks-around-fences",
			"Fenced code blocks should be surrounded by blank lines",
			[]string{"code", "blank_lines"},
		),
	}
}

// Apply reports an opening fence without a blank line above and a closing
// fence without a blank line below. An unclosed fence has no closing line
// to check.
func (r *BlanksAroundFencesRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := ctx.Doc

	var diags []lint.Diagnostic
	for _, block := range doc.Context.CodeBlocks {
		if !doc.IsBlankLine(block.StartLine - 1) {
			diags = append(diags, r.Diag(block.StartLine, 0, doc.Line(block.StartLine)))
		}
		if block.Closed() && !doc.IsBlankLine(block.EndLine+1) {
			diags = append(diags, r.Diag(block.EndLine, 0, doc.Line(block.EndLine)))
		}
	}

	return diags, nil
}

// FencedCodeLanguageRule checks that fenced code blocks declare a language.
type FencedCodeLanguageRule struct {
	lint.BaseRule
}

// NewFencedCodeLanguageRule creates a new fenced code language rule.
func NewFencedCodeLanguageRule() *FencedCodeLanguageRule {
	return &FencedCodeLanguageRule{
		BaseRule: lint.NewBaseRule(
			"MD040",
			"fenced-code-language",
			"Fenced code blocks should have a language specified",
			[]string{"code", "language"},
		),
	}
}

// Apply reports each opening fence with an empty info string.
func (r *FencedCodeLanguageRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	var diags []lint.Diagnostic
	for _, block := range ctx.Doc.Context.CodeBlocks {
		if !block.Declared {
			diags = append(diags, r.Diag(block.StartLine, 0, ""))
		}
	}
	return diags, nil
}
