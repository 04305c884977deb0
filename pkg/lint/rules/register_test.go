package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/lint"
	"github.com/yaklabco/mdfix/pkg/lint/rules"
)

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	rules.RegisterAll(registry)

	want := map[string]string{
		"MD009": "no-trailing-spaces",
		"MD010": "no-hard-tabs",
		"MD012": "no-multiple-blanks",
		"MD018": "no-missing-space-atx",
		"MD022": "blanks-around-headings",
		"MD026": "no-trailing-punctuation",
		"MD031": "blanks-around-fences",
		"MD032": "blanks-around-lists",
		"MD040": "fenced-code-language",
		"MD047": "single-trailing-newline",
	}

	assert.Len(t, registry.Rules(), len(want))
	for id, name := range want {
		rule, ok := registry.GetByID(id)
		require.True(t, ok, "%s should be registered", id)
		assert.Equal(t, name, rule.Name())
		assert.NotEmpty(t, rule.Description())
		assert.True(t, rule.DefaultEnabled())
	}

	for _, id := range []string{"MD001", "MD004", "MD013", "MD024", "MD025"} {
		_, ok := registry.GetByID(id)
		assert.False(t, ok, "%s is covered by the structural checks", id)
	}
}

func TestRegisterLegacyAliases(t *testing.T) {
	t.Parallel()

	registry := rules.NewRegistry()

	id, rule, ok := registry.Resolve("blanks-around-headers")
	require.True(t, ok)
	assert.Equal(t, "MD022", id)
	assert.Equal(t, "blanks-around-headings", rule.Name())
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	_, ok := lint.DefaultRegistry.GetByName("single-trailing-newline")
	assert.True(t, ok)
}
