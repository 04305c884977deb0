package rules

import (
	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdfix/pkg/lint"
)

// BlanksAroundListsRule checks that lists are set off by blank lines.
type BlanksAroundListsRule struct {
	lint.BaseRule
}

// NewBlanksAroundListsRule creates a new blanks around lists rule.
func NewBlanksAroundListsRule() *BlanksAroundListsRule {
	return &BlanksAroundListsRule{
		BaseRule: lint.NewBaseRule(
			"MD032",
			"blanks-around-lists",
			"Lists should be surrounded by blank lines",
			[]string{"bullet", "ul", "ol", "blank_lines"},
		),
	}
}

// Apply checks the line before the first item and after the last line of
// every list that is not nested in another list.
func (r *BlanksAroundListsRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := ctx.Doc
	if doc.Root == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	_ = ast.Walk(doc.Root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		list, ok := n.(*ast.List)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}

		start, end := doc.StartLine(list), doc.EndLine(list)
		if start > 0 && !doc.IsBlankLine(start-1) {
			diags = append(diags, r.Diag(start, 0, doc.Line(start)))
		}
		if end > 0 && !doc.IsBlankLine(end+1) {
			diags = append(diags, r.Diag(end, 0, doc.Line(end)))
		}

		// Nested lists are covered by their parent.
		return ast.WalkSkipChildren, nil
	})

	return diags, nil
}
