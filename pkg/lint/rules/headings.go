package rules

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"

	"github.com/yaklabco/mdfix/pkg/lint"
)

var (
	missingSpaceATX = regexp.MustCompile(`^#+[^#\s]`)
	closedATX       = regexp.MustCompile(`#\s*$`)
	htmlEntity      = regexp.MustCompile(`&#?[0-9a-zA-Z]+;$`)
)

// headings returns every heading in document order.
func headings(root ast.Node) []*ast.Heading {
	if root == nil {
		return nil
	}
	var out []*ast.Heading
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			out = append(out, h)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

// isATX reports whether the heading starting at line is written with '#'.
func isATX(doc *lint.Document, line int) bool {
	return strings.HasPrefix(strings.TrimLeft(doc.Line(line), " "), "#")
}

// NoMissingSpaceATXRule checks for '#' runs not followed by a space.
type NoMissingSpaceATXRule struct {
	lint.BaseRule
}

// NewNoMissingSpaceATXRule creates a new missing space rule.
func NewNoMissingSpaceATXRule() *NoMissingSpaceATXRule {
	return &NoMissingSpaceATXRule{
		BaseRule: lint.NewBaseRule(
			"MD018",
			"no-missing-space-atx",
			"No space after hash on atx style heading",
			[]string{"headings", "atx", "spaces"},
		),
	}
}

// Apply reports lines like "#Title" outside fenced code. Shebangs and
// closed headings ("#Title#") are left alone.
func (r *NoMissingSpaceATXRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	fenced := fencedLines(ctx.Doc)

	var diags []lint.Diagnostic
	for i, line := range ctx.Doc.Lines {
		if fenced[i+1] || strings.HasPrefix(line, "#!") {
			continue
		}
		if missingSpaceATX.MatchString(line) && !closedATX.MatchString(line) {
			diags = append(diags, r.Diag(i+1, 1, line))
		}
	}

	return diags, nil
}

// BlanksAroundHeadingsRule checks that headings are set off by blank lines.
type BlanksAroundHeadingsRule struct {
	lint.BaseRule
}

// NewBlanksAroundHeadingsRule creates a new blanks around headings rule.
func NewBlanksAroundHeadingsRule() *BlanksAroundHeadingsRule {
	return &BlanksAroundHeadingsRule{
		BaseRule: lint.NewBaseRule(
			"MD022",
			"blanks-around-headings",
			"Headings should be surrounded by blank lines",
			[]string{"headings", "blank_lines"},
		),
	}
}

// Apply checks lines_above and lines_below (both default 1) for every
// heading. The start and end of the document count as blank.
func (r *BlanksAroundHeadingsRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := ctx.Doc
	above := ctx.OptionInt("lines_above", 1)
	below := ctx.OptionInt("lines_below", 1)

	var diags []lint.Diagnostic
	for _, h := range headings(doc.Root) {
		start := doc.StartLine(h)
		if start == 0 {
			continue
		}
		end := start
		if !isATX(doc, start) {
			// Setext underline follows the text lines.
			end = doc.EndLine(h) + 1
		}

		actual := 0
		for actual < above && doc.IsBlankLine(start-actual-1) {
			actual++
		}
		if actual < above {
			diags = append(diags, r.Diag(start, 0, expectedActual(above, actual)+"; Above"))
		}

		actual = 0
		for actual < below && doc.IsBlankLine(end+actual+1) {
			actual++
		}
		if actual < below {
			diags = append(diags, r.Diag(start, 0, expectedActual(below, actual)+"; Below"))
		}
	}

	return diags, nil
}

// TrailingPunctuationRule checks for punctuation at the end of headings.
type TrailingPunctuationRule struct {
	lint.BaseRule
}

// NewTrailingPunctuationRule creates a new trailing punctuation rule.
func NewTrailingPunctuationRule() *TrailingPunctuationRule {
	return &TrailingPunctuationRule{
		BaseRule: lint.NewBaseRule(
			"MD026",
			"no-trailing-punctuation",
			"Trailing punctuation in heading",
			[]string{"headings"},
		),
	}
}

// Apply reports headings whose text ends in one of the punctuation option
// characters (default ".,;:!"). A trailing HTML entity is not punctuation.
func (r *TrailingPunctuationRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	doc := ctx.Doc
	punctuation := ctx.OptionString("punctuation", ".,;:!")
	if punctuation == "" {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, h := range headings(doc.Root) {
		lines := h.Lines()
		if lines.Len() == 0 {
			continue
		}
		seg := lines.At(lines.Len() - 1)
		text := strings.TrimRight(string(seg.Value(doc.Content)), " \t\r\n")
		if text == "" || htmlEntity.MatchString(text) {
			continue
		}

		last, size := utf8.DecodeLastRuneInString(text)
		if !strings.ContainsRune(punctuation, last) {
			continue
		}

		offset := seg.Start + len(text) - size
		diags = append(diags, r.Diag(doc.LineOf(offset), doc.Column(offset), "Punctuation: '"+string(last)+"'"))
	}

	return diags, nil
}
