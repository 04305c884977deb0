package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/internal/cli"
)

const (
	validDoc   = "# Title\n\n## Section\n\nSome text.\n"
	skippedDoc = "# Title\n\n## Section\n\n#### Subsection\n"
	fixedDoc   = "# Title\n\n## Section\n\n### Subsection\n"
)

var testInfo = cli.BuildInfo{
	Version: "1.2.3",
	Commit:  "abc123",
	Date:    "2026-01-02",
}

// execute runs the root command with args and returns what it wrote.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(testInfo)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// testConfig writes a config file that pins the settings tests rely on.
func testConfig(t *testing.T) string {
	t.Helper()
	return writeFile(t, filepath.Join(t.TempDir(), "mdfix.yml"), "flavor: commonmark\nmax_line_length: 120\n")
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	require.NotNil(t, cmd)

	assert.Equal(t, "mdfix", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	for _, name := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "global flag %q", name)
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)

	for _, name := range []string{"check", "preview", "rules", "init", "migrate", "version"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestCheckCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo)
	checkCmd, _, err := cmd.Find([]string{"check"})
	require.NoError(t, err)

	tests := []struct {
		flag string
		def  string
	}{
		{"fix", "false"},
		{"dry-run", "false"},
		{"no-backups", "false"},
		{"format", "text"},
		{"flavor", "commonmark"},
		{"rule-format", "name"},
		{"max-line-length", "120"},
		{"jobs", "0"},
		{"ignore", "[]"},
		{"enable", "[]"},
		{"disable", "[]"},
		{"no-context", "false"},
		{"no-summary", "false"},
		{"verbose", "false"},
	}

	for _, tt := range tests {
		flag := checkCmd.Flags().Lookup(tt.flag)
		if assert.NotNil(t, flag, "flag %q", tt.flag) {
			assert.Equal(t, tt.def, flag.DefValue, "default of %q", tt.flag)
		}
	}

	assert.NoError(t, checkCmd.Args(checkCmd, []string{"a.md", "docs/"}))
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "mdfix")
	assert.Contains(t, stdout, "version=1.2.3")
	assert.Contains(t, stdout, "commit=abc123")
	assert.Contains(t, stdout, "built=2026-01-02")
}

func TestHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "root",
			args: []string{"--help", "--color", "never"},
			want: []string{"Usage:", "Available Commands:", "check", "Flags:", "--color string"},
		},
		{
			name: "check",
			args: []string{"check", "--help", "--color", "never"},
			want: []string{"mdfix check [paths...|-]", "Flags:", "--dry-run", "Global Flags:"},
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
		})
	}
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "", "check", "--no-such-flag")
	require.Error(t, err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}
