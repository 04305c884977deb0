package rules

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdfix/pkg/lint"
)

// TrailingSpacesRule checks for trailing spaces on lines.
type TrailingSpacesRule struct {
	lint.BaseRule
}

// NewTrailingSpacesRule creates a new trailing spaces rule.
func NewTrailingSpacesRule() *TrailingSpacesRule {
	return &TrailingSpacesRule{
		BaseRule: lint.NewBaseRule(
			"MD009",
			"no-trailing-spaces",
			"Trailing spaces",
			[]string{"whitespace"},
		),
	}
}

// Apply reports lines ending in spaces. Exactly br_spaces trailing spaces
// after text are a hard line break and are allowed.
func (r *TrailingSpacesRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	brSpaces := ctx.OptionInt("br_spaces", 2)

	var diags []lint.Diagnostic
	for i, line := range ctx.Doc.Lines {
		trimmed := strings.TrimRight(line, " ")
		trailing := len(line) - len(trimmed)
		if trailing == 0 {
			continue
		}
		if brSpaces >= 2 && trailing == brSpaces && strings.TrimSpace(trimmed) != "" {
			continue
		}

		expected := "0"
		if brSpaces >= 2 {
			expected = "0 or " + strconv.Itoa(brSpaces)
		}
		column := utf8.RuneCountInString(trimmed) + 1
		diags = append(diags, r.Diag(i+1, column, expectedActual(expected, trailing)))
	}

	return diags, nil
}

// HardTabsRule checks for tab characters.
type HardTabsRule struct {
	lint.BaseRule
}

// NewHardTabsRule creates a new hard tabs rule.
func NewHardTabsRule() *HardTabsRule {
	return &HardTabsRule{
		BaseRule: lint.NewBaseRule(
			"MD010",
			"no-hard-tabs",
			"Hard tabs",
			[]string{"whitespace", "hard_tab"},
		),
	}
}

// Apply reports the first tab on each line. Fenced code is skipped when the
// code_blocks option is false.
func (r *HardTabsRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	includeCode := ctx.OptionBool("code_blocks", true)

	var fenced []bool
	if !includeCode {
		fenced = fencedLines(ctx.Doc)
	}

	var diags []lint.Diagnostic
	for i, line := range ctx.Doc.Lines {
		if !includeCode && fenced[i+1] {
			continue
		}
		idx := strings.IndexByte(line, '\t')
		if idx < 0 {
			continue
		}
		column := utf8.RuneCountInString(line[:idx]) + 1
		diags = append(diags, r.Diag(i+1, column, "Column: "+strconv.Itoa(column)))
	}

	return diags, nil
}

// MultipleBlanksRule checks for runs of blank lines.
type MultipleBlanksRule struct {
	lint.BaseRule
}

// NewMultipleBlanksRule creates a new multiple blank lines rule.
func NewMultipleBlanksRule() *MultipleBlanksRule {
	return &MultipleBlanksRule{
		BaseRule: lint.NewBaseRule(
			"MD012",
			"no-multiple-blanks",
			"Multiple consecutive blank lines",
			[]string{"whitespace", "blank_lines"},
		),
	}
}

// Apply reports every blank line beyond the allowed maximum, outside
// fenced code.
func (r *MultipleBlanksRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	maximum := ctx.OptionInt("maximum", 1)
	fenced := fencedLines(ctx.Doc)

	var diags []lint.Diagnostic
	count := 0
	for i, line := range ctx.Doc.Lines {
		if fenced[i+1] || strings.TrimSpace(line) != "" {
			count = 0
			continue
		}
		count++
		if count > maximum {
			diags = append(diags, r.Diag(i+1, 0, expectedActual(maximum, count)))
		}
	}

	return diags, nil
}

// FinalNewlineRule ensures files end with a single newline.
type FinalNewlineRule struct {
	lint.BaseRule
}

// NewFinalNewlineRule creates a new final newline rule.
func NewFinalNewlineRule() *FinalNewlineRule {
	return &FinalNewlineRule{
		BaseRule: lint.NewBaseRule(
			"MD047",
			"single-trailing-newline",
			"Files should end with a single newline character",
			[]string{"blank_lines"},
		),
	}
}

// Apply reports a last line that has content but no terminating newline.
func (r *FinalNewlineRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	lines := ctx.Doc.Lines
	if len(lines) == 0 {
		return nil, nil
	}

	last := lines[len(lines)-1]
	if strings.TrimSpace(last) == "" {
		return nil, nil
	}

	return []lint.Diagnostic{r.Diag(len(lines), utf8.RuneCountInString(last), "")}, nil
}
