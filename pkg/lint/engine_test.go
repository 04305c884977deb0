package lint_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/finding"
	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/lint/rules"
	"github.com/yaklabco/mdfix/pkg/parser/goldmark"
)

var errBroken = errors.New("broken")

type failingRule struct {
	lint.BaseRule
}

func (r *failingRule) Apply(*lint.RuleContext) ([]lint.Diagnostic, error) {
	return nil, errBroken
}

func newEngine() *lint.Engine {
	return lint.NewEngine(goldmark.New(goldmark.FlavorCommonMark), rules.NewRegistry())
}

func TestEngine_Lint(t *testing.T) {
	t.Parallel()

	input := "# Title\n## Section\nThis is a paragraph.\n- Item 1\n- Item 2"
	result, err := newEngine().Lint([]byte(input), config.NewConfig())
	require.NoError(t, err)
	require.True(t, result.HasIssues())
	assert.Empty(t, result.RuleErrors)

	var got []string
	for _, d := range result.Diagnostics {
		got = append(got, d.RuleID)
		assert.Equal(t, config.SeverityError, d.Severity)
		assert.NotEmpty(t, d.Description)
	}
	assert.Equal(t, []string{"MD022", "MD022", "MD022", "MD032", "MD047"}, got)

	findings := result.Findings()
	require.Len(t, findings, 5)
	last := findings[4]
	assert.Equal(t, finding.LintRule, last.Kind)
	assert.Equal(t, "single-trailing-newline", last.RuleName)
	assert.Equal(t, "Files should end with a single newline character [5:8]", last.String())
}

func TestEngine_Lint_Clean(t *testing.T) {
	t.Parallel()

	result, err := newEngine().Lint([]byte("# Title\n\n- a\n- b\n\n```go\nx := 1\n```\n"), config.NewConfig())
	require.NoError(t, err)
	assert.False(t, result.HasIssues())
	assert.Nil(t, result.Findings())
}

func TestEngine_Lint_Config(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	disabled := false
	warning := "warning"
	cfg.Rules["blanks-around-headings"] = config.RuleConfig{Enabled: &disabled}
	cfg.Rules["MD047"] = config.RuleConfig{Severity: &warning}

	result, err := newEngine().Lint([]byte("# Title\n## Section"), cfg)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "MD047", result.Diagnostics[0].RuleID)
	assert.Equal(t, config.SeverityWarning, result.Diagnostics[0].Severity)
	assert.Equal(t, finding.SeverityWarning, result.Findings()[0].Severity)
}

func TestEngine_Lint_ConfigError(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	bad := "loud"
	cfg.Rules["MD009"] = config.RuleConfig{Severity: &bad}

	_, err := newEngine().Lint([]byte("# T\n"), cfg)
	var cfgErr *lint.ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestEngine_RuleErrorsDoNotStopOthers(t *testing.T) {
	t.Parallel()

	registry := rules.NewRegistry()
	registry.Register(&failingRule{BaseRule: lint.NewBaseRule("MDX01", "always-fails", "Always fails", nil)})

	result, err := lint.NewEngine(goldmark.New(""), registry).Lint([]byte("# T"), nil)
	require.NoError(t, err)
	require.ErrorIs(t, result.RuleErrors["MDX01"], errBroken)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "MD047", result.Diagnostics[0].RuleID)
}
