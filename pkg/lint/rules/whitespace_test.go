package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/lint/rules"
)

func TestTrailingSpacesRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return rules.NewTrailingSpacesRule() }, []ruleCase{
		{name: "clean", input: "Hello world\nSecond line\n"},
		{name: "single trailing space", input: "Hello world \n", want: []string{"1:12"}},
		{name: "line break spaces allowed", input: "Line break  \nnext\n"},
		{name: "three spaces", input: "Three   \n", want: []string{"1:6"}},
		{name: "whitespace only line", input: "a\n  \nb\n", want: []string{"2:1"}},
		{name: "trailing tab is not a space", input: "tab\t\n"},
		{name: "several lines", input: "one \ntwo   \nthree\n", want: []string{"1:4", "2:4"}},
		{name: "empty", input: ""},
		{
			name:    "line breaks disabled",
			input:   "Line break  \n",
			options: map[string]any{"br_spaces": 0},
			want:    []string{"1:11"},
		},
	})
}

func TestTrailingSpacesRule_Detail(t *testing.T) {
	t.Parallel()

	diags := applyRule(t, rules.NewTrailingSpacesRule(), "Three   \n", nil)
	require.Len(t, diags, 1)
	assert.Equal(t, "Expected: 0 or 2; Actual: 3", diags[0].Message)

	diags = applyRule(t, rules.NewTrailingSpacesRule(), "x \n", map[string]any{"br_spaces": 0})
	require.Len(t, diags, 1)
	assert.Equal(t, "Expected: 0; Actual: 1", diags[0].Message)
}

func TestHardTabsRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return rules.NewHardTabsRule() }, []ruleCase{
		{name: "no tabs", input: "plain\n"},
		{name: "tab in text", input: "a\tb\n", want: []string{"1:2"}},
		{name: "first tab only", input: "\ta\tb\n", want: []string{"1:1"}},
		{name: "tab in fence", input: "```go\n\tx\n```\n", want: []string{"2:1"}},
		{
			name:    "fenced code excluded",
			input:   "```go\n\tx\n```\n\tafter\n",
			options: map[string]any{"code_blocks": false},
			want:    []string{"4:1"},
		},
	})
}

func TestMultipleBlanksRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return rules.NewMultipleBlanksRule() }, []ruleCase{
		{name: "single blanks", input: "a\n\nb\n"},
		{name: "double blank", input: "a\n\n\nb\n", want: []string{"3:0"}},
		{name: "triple blank", input: "a\n\n\n\nb\n", want: []string{"3:0", "4:0"}},
		{name: "inside fence", input: "```\na\n\n\nb\n```\n"},
		{name: "trailing blank lines", input: "a\n\n", want: []string{"3:0"}},
		{name: "maximum option", input: "a\n\n\nb\n", options: map[string]any{"maximum": 2}},
	})
}

func TestFinalNewlineRule(t *testing.T) {
	t.Parallel()

	runRuleCases(t, func() lint.Rule { return rules.NewFinalNewlineRule() }, []ruleCase{
		{name: "newline present", input: "a\n"},
		{name: "empty", input: ""},
		{name: "missing", input: "a", want: []string{"1:1"}},
		{
			name:  "missing after list",
			input: "# Title\n## Section\nThis is a paragraph.\n- Item 1\n- Item 2",
			want:  []string{"5:8"},
		},
		{name: "whitespace tail ignored", input: "a\n  "},
	})
}
