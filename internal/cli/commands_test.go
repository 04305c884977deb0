package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/internal/cli"
	"github.com/yaklabco/mdfix/pkg/config"
	"github.com/yaklabco/mdfix/pkg/lint/rules"
)

type jsonRule struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Enabled     bool     `json:"enabled"`
	Tags        []string `json:"tags"`
}

func decodeRules(t *testing.T, stdout string) []jsonRule {
	t.Helper()
	var out []jsonRule
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	return out
}

func TestRules_JSON(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "rules", "--format", "json")
	require.NoError(t, err)

	got := decodeRules(t, stdout)
	require.Len(t, got, len(rules.NewRegistry().Infos()))

	idx := slices.IndexFunc(got, func(r jsonRule) bool { return r.ID == "MD009" })
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "no-trailing-spaces", got[idx].Name)
	assert.Equal(t, []string{"whitespace"}, got[idx].Tags)
	assert.NotEmpty(t, got[idx].Severity)
}

func TestRules_TagFilter(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "rules", "--format", "json", "--tag", "whitespace")
	require.NoError(t, err)

	got := decodeRules(t, stdout)
	ids := make([]string, 0, len(got))
	for _, r := range got {
		assert.Contains(t, r.Tags, "whitespace")
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"MD009", "MD010", "MD012"}, ids)
}

func TestRules_Query(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "rules", "--format", "json", "trailing spaces")
	require.NoError(t, err)

	got := decodeRules(t, stdout)
	require.NotEmpty(t, got)
	assert.Equal(t, "MD009", got[0].ID, "best match first")
}

func TestRules_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		want       []string
		wantAbsent []string
	}{
		{
			name: "combined by default",
			args: []string{"rules", "--color", "never"},
			want: []string{"MD009/no-trailing-spaces", "Trailing spaces", "[whitespace]", "rules"},
		},
		{
			name:       "ids only",
			args:       []string{"rules", "--color", "never", "--rule-format", "id", "--tag", "hard_tab"},
			want:       []string{"MD010", "Hard tabs", "1 rule"},
			wantAbsent: []string{"no-hard-tabs", "MD009"},
		},
		{
			name: "no match",
			args: []string{"rules", "zzzzzzzz"},
			want: []string{"no matching rules"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stdout, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, stdout, want)
			}
			for _, absent := range tt.wantAbsent {
				assert.NotContains(t, stdout, absent)
			}
		})
	}
}

func TestRules_UnknownFormat(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"rules", "--format", "yaml"},
		{"rules", "--rule-format", "short"},
	} {
		_, _, err := execute(t, "", args...)
		require.Error(t, err, args)
		assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err), args)
	}
}

func TestInit(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), ".mdfix.yml")

	_, _, err := execute(t, "", "init", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# mdfix configuration")

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMaxLineLength, cfg.MaxLineLength)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
}

func TestInit_Full(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "mdfix.yaml")

	_, _, err := execute(t, "", "init", "--full", "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Contains(t, cfg.Rules, "MD009")
}

func TestInit_ExistingFile(t *testing.T) {
	t.Parallel()

	output := writeFile(t, filepath.Join(t.TempDir(), ".mdfix.yml"), "max_line_length: 80\n")

	_, _, err := execute(t, "", "init", "--output", output)
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "max_line_length: 80\n", string(content))

	_, _, err = execute(t, "", "init", "--force", "--output", output)
	require.NoError(t, err)

	content, err = os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# mdfix configuration")
}

func TestMigrate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, filepath.Join(dir, ".markdownlint.json"), `{
  "MD009": false,
  "no-hard-tabs": { "severity": "warning" },
  "MD013": { "line_length": 100 }
}`)
	output := filepath.Join(dir, ".mdfix.yml")

	_, _, err := execute(t, "", "migrate", input, "--output", output)
	require.NoError(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Imported from: .markdownlint.json")

	cfg, err := config.FromYAML(content)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.MaxLineLength)
	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	require.Contains(t, cfg.Rules, "MD009")
	assert.False(t, *cfg.Rules["MD009"].Enabled)
	require.Contains(t, cfg.Rules, "MD010")
	assert.True(t, *cfg.Rules["MD010"].Enabled)
}

func TestMigrate_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jsConfig := writeFile(t, filepath.Join(dir, ".markdownlint.cjs"), "module.exports = {};\n")
	existing := writeFile(t, filepath.Join(dir, "existing.yml"), "flavor: gfm\n")
	valid := writeFile(t, filepath.Join(dir, ".markdownlint.yaml"), "MD009: false\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{
			name: "javascript config",
			args: []string{"migrate", jsConfig, "--output", filepath.Join(dir, "out.yml")},
			want: cli.ExitConfigError,
		},
		{
			name: "missing input",
			args: []string{"migrate", filepath.Join(dir, "absent.json"), "--output", filepath.Join(dir, "out.yml")},
			want: cli.ExitIOError,
		},
		{
			name: "existing output",
			args: []string{"migrate", valid, "--output", existing},
			want: cli.ExitInvalidUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err))
		})
	}
}

func TestPreview_Raw(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, filepath.Join(t.TempDir(), "doc.md"), skippedDoc)

	stdout, _, err := execute(t, "", "preview", "--config", testConfig(t), "--raw", doc)
	require.NoError(t, err)
	assert.Equal(t, fixedDoc, stdout)

	got, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, skippedDoc, string(got), "preview never writes")
}

func TestPreview_Rendered(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, skippedDoc,
		"preview", "--config", testConfig(t), "--color", "never", "--width", "60", "-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Title")
	assert.Contains(t, stdout, "Subsection")
	assert.NotContains(t, stdout, "####")
}

func TestPreview_MissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "preview", "--config", testConfig(t), filepath.Join(t.TempDir(), "absent.md"))
	require.Error(t, err)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}
