package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/internal/cli"
	"github.com/yaklabco/mdfix/pkg/fsutil"
)

func TestCheck_ValidFile(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, filepath.Join(t.TempDir(), "valid.md"), validDoc)

	stdout, _, err := execute(t, "", "check", "--config", testConfig(t), "--color", "never", "--verbose", doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "valid")
}

func TestCheck_WireFindings(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, filepath.Join(t.TempDir(), "doc.md"), skippedDoc)

	stdout, _, err := execute(t, "", "check", "--config", testConfig(t), "--format", "wire", doc)
	require.ErrorIs(t, err, cli.ErrFindings)
	assert.Equal(t, cli.ExitFindings, cli.ExitCode(err))
	assert.Equal(t, "Skipped heading level 3 [5:0]\n", stdout)

	got, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, skippedDoc, string(got), "check without --fix never writes")
}

func TestCheck_TextFindings(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, filepath.Join(t.TempDir(), "doc.md"), skippedDoc)

	stdout, _, err := execute(t, "", "check", "--config", testConfig(t), "--color", "never", doc)
	require.ErrorIs(t, err, cli.ErrFindings)
	assert.Contains(t, stdout, "doc.md")
	assert.Contains(t, stdout, "Skipped heading level 3")
}

func TestCheck_JSONFindings(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, filepath.Join(t.TempDir(), "doc.md"), skippedDoc)

	stdout, _, err := execute(t, "", "check", "--config", testConfig(t), "--format", "json", doc)
	require.ErrorIs(t, err, cli.ErrFindings)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Contains(t, stdout, "skipped-heading-level")
}

func TestCheck_Fix(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, filepath.Join(t.TempDir(), "doc.md"), skippedDoc)

	_, _, err := execute(t, "", "check", "--config", testConfig(t), "--fix", "--color", "never", doc)
	require.NoError(t, err)

	got, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, fixedDoc, string(got))

	backup, err := os.ReadFile(fsutil.BackupPath(doc))
	require.NoError(t, err)
	assert.Equal(t, skippedDoc, string(backup))
}

func TestCheck_FixNoBackups(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, filepath.Join(t.TempDir(), "doc.md"), skippedDoc)

	_, _, err := execute(t, "", "check", "--config", testConfig(t), "--fix", "--no-backups", "--color", "never", doc)
	require.NoError(t, err)
	assert.NoFileExists(t, fsutil.BackupPath(doc))
}

func TestCheck_FixLeavesResidual(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, filepath.Join(t.TempDir(), "dup.md"), "# T\n\n## Setup\n\n## Setup\n\ntext\n")

	stdout, _, err := execute(t, "", "check", "--config", testConfig(t), "--fix", "--format", "wire", doc)
	require.ErrorIs(t, err, cli.ErrFindings)
	assert.Equal(t, "Duplicate heading \"setup\" first used at line 3 [3:0]\n", stdout)
}

func TestCheck_DryRunShowsDiff(t *testing.T) {
	t.Parallel()

	doc := writeFile(t, filepath.Join(t.TempDir(), "doc.md"), skippedDoc)

	stdout, _, _ := execute(t, "", "check", "--config", testConfig(t), "--dry-run", "--color", "never", doc)
	assert.Contains(t, stdout, "@@")
	assert.Contains(t, stdout, "-#### Subsection")
	assert.Contains(t, stdout, "+### Subsection")

	got, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, skippedDoc, string(got))
}

func TestCheck_MultipleFilesArePrefixed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), skippedDoc)
	writeFile(t, filepath.Join(dir, "b.md"), validDoc)

	stdout, _, err := execute(t, "", "check", "--config", testConfig(t), "--format", "wire", dir)
	require.ErrorIs(t, err, cli.ErrFindings)
	assert.Contains(t, stdout, "a.md: Skipped heading level 3 [5:0]\n")
	assert.NotContains(t, stdout, "b.md")
}

func TestCheck_IgnorePattern(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "drafts", "a.md"), skippedDoc)
	writeFile(t, filepath.Join(dir, "b.md"), validDoc)

	_, _, err := execute(t, "", "check", "--config", testConfig(t), "--format", "wire",
		"--ignore", "**/drafts/**", dir)
	require.NoError(t, err)
}

func TestCheck_Stdin(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, skippedDoc, "check", "--config", testConfig(t), "--format", "wire", "-")
	require.ErrorIs(t, err, cli.ErrFindings)
	assert.Equal(t, "Skipped heading level 3 [5:0]\n", stdout)
}

func TestCheck_StdinFixWritesDocument(t *testing.T) {
	t.Parallel()

	stdout, stderr, err := execute(t, skippedDoc, "check", "--config", testConfig(t), "--fix", "--format", "wire", "-")
	require.NoError(t, err)
	assert.Equal(t, fixedDoc, stdout)
	assert.Empty(t, stderr)
}

func TestCheck_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{
			name: "stdin with other paths",
			args: []string{"check", "-", "README.md"},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "unknown format",
			args: []string{"check", "--format", "xml", "-"},
			want: cli.ExitInvalidUsage,
		},
		{
			name: "unknown flavor",
			args: []string{"check", "--flavor", "mdx", "-"},
			want: cli.ExitConfigError,
		},
		{
			name: "missing path",
			args: []string{"check", filepath.Join("does", "not", "exist.md")},
			want: cli.ExitIOError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			args := append([]string{"--config", testConfig(t)}, tt.args...)
			_, _, err := execute(t, validDoc, args...)
			require.Error(t, err)
			assert.Equal(t, tt.want, cli.ExitCode(err))
		})
	}
}

func TestCheck_MissingConfigFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, validDoc, "check", "--config", filepath.Join(t.TempDir(), "absent.yml"), "-")
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}
