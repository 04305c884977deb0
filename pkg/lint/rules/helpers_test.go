package rules_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/parser/goldmark"
)

// applyRule parses input and runs a single rule over it.
func applyRule(t *testing.T, rule lint.Rule, input string, options map[string]any) []lint.Diagnostic {
	t.Helper()

	content := []byte(input)
	root, err := goldmark.New(goldmark.FlavorCommonMark).Parse(content)
	require.NoError(t, err)

	var ruleCfg *config.RuleConfig
	if options != nil {
		ruleCfg = &config.RuleConfig{Options: options}
	}

	ctx := lint.NewRuleContext(lint.NewDocument(content, root), config.NewConfig(), ruleCfg)
	diags, err := rule.Apply(ctx)
	require.NoError(t, err)
	return diags
}

// positions renders diagnostics as "line:column".
func positions(diags []lint.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, fmt.Sprintf("%d:%d", d.Line, d.Column))
	}
	return out
}

type ruleCase struct {
	name    string
	input   string
	options map[string]any
	want    []string
}

func runRuleCases(t *testing.T, newRule func() lint.Rule, tests []ruleCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags := applyRule(t, newRule(), tt.input, tt.options)
			want := tt.want
			if want == nil {
				want = []string{}
			}
			require.Equal(t, want, positions(diags))
			for _, d := range diags {
				require.NotEmpty(t, d.RuleID)
				require.NotEmpty(t, d.RuleName)
			}
		})
	}
}
