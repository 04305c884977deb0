package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/runner"
)

// makeTree creates files under a temp dir and returns the dir.
func makeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// rel converts discovered paths back to slash paths relative to dir.
func rel(t *testing.T, dir string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		r, err := filepath.Rel(dir, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"README.md":                  "# R\n",
		"notes.markdown":             "# N\n",
		"main.go":                    "package main\n",
		"docs/guide.md":              "# G\n",
		"docs/draft.tmp.md":          "# D\n",
		"vendor/lib/README.md":       "# V\n",
		"node_modules/pkg/README.md": "# P\n",
		".github/ISSUE.md":           "# I\n",
		"docs/.hidden.md":            "# H\n",
	}

	tests := []struct {
		name    string
		paths   []string
		exclude []string
		exts    []string
		want    []string
	}{
		{
			name: "defaults",
			want: []string{
				"README.md", "docs/draft.tmp.md", "docs/guide.md", "node_modules/pkg/README.md",
				"notes.markdown", "vendor/lib/README.md",
			},
		},
		{
			name:    "doublestar excludes",
			exclude: []string{"**/vendor/**", "**/node_modules/**"},
			want:    []string{"README.md", "docs/draft.tmp.md", "docs/guide.md", "notes.markdown"},
		},
		{
			name:    "base name pattern",
			exclude: []string{"*.tmp.md", "vendor/**", "node_modules"},
			want:    []string{"README.md", "docs/guide.md", "notes.markdown"},
		},
		{
			name:  "subdirectory path",
			paths: []string{"docs"},
			want:  []string{"docs/draft.tmp.md", "docs/guide.md"},
		},
		{
			name:  "explicit file with any extension",
			paths: []string{"main.go", "README.md", "README.md"},
			want:  []string{"README.md", "main.go"},
		},
		{
			name: "custom extensions",
			exts: []string{".MARKDOWN"},
			want: []string{"notes.markdown"},
		},
	}

	dir := makeTree(t, files)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := runner.Discover(context.Background(), runner.Options{
				Paths:        tt.paths,
				WorkingDir:   dir,
				ExcludeGlobs: tt.exclude,
				Extensions:   tt.exts,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, dir, got))
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()
	dir := makeTree(t, map[string]string{"a.md": "# A\n"})

	t.Run("missing path", func(t *testing.T) {
		t.Parallel()
		_, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir: dir,
			Paths:      []string{"missing.md"},
		})
		require.Error(t, err)
	})

	t.Run("bad pattern", func(t *testing.T) {
		t.Parallel()
		_, err := runner.Discover(context.Background(), runner.Options{
			WorkingDir:   dir,
			ExcludeGlobs: []string{"docs/[unclosed"},
		})
		require.ErrorIs(t, err, runner.ErrBadPattern)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	target := makeTree(t, map[string]string{"linked.md": "# L\n"})
	dir := makeTree(t, map[string]string{"a.md": "# A\n"})
	require.NoError(t, os.Symlink(target, filepath.Join(dir, "link")))

	got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, rel(t, dir, got))

	got, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	bases := make([]string, 0, len(got))
	for _, p := range got {
		bases = append(bases, filepath.Base(p))
	}
	assert.ElementsMatch(t, []string{"a.md", "linked.md"}, bases)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	opts := runner.OptionsFromConfig(nil, []string{"docs"})
	assert.Equal(t, []string{"docs"}, opts.Paths)
	require.NotNil(t, opts.Config)
	assert.Equal(t, []string{".md", ".markdown"}, runner.DefaultExtensions())
}
