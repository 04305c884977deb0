package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdfix/pkg/fsutil"
)

func writeFile(t *testing.T, name, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
	require.NoError(t, os.Chmod(path, mode))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("returns content and snapshot", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "doc.md", "# Title\n", 0o600)

		content, snap, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "# Title\n", string(content))
		assert.Equal(t, path, snap.Path)
		assert.Equal(t, int64(8), snap.Size)
		assert.Equal(t, os.FileMode(0o600), snap.Mode)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.md"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()
		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := fsutil.ReadFile(ctx, "whatever.md")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSnapshot_Changed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "a.md", "hello\n", 0o644)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("size differs", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "a.md", "hello\n", 0o644)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("hello world\n"), 0o644))

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("same size and mod time but new content", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "a.md", "hello\n", 0o644)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("jello\n"), 0o644))
		require.NoError(t, os.Chtimes(path, snap.ModTime, snap.ModTime))

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "a.md", "hello\n", 0o644)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		changed, err := snap.Changed(ctx)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("nil snapshot", func(t *testing.T) {
		t.Parallel()
		var snap *fsutil.Snapshot
		_, err := snap.Changed(ctx)
		require.ErrorIs(t, err, fsutil.ErrNilSnapshot)
	})
}

func TestReplace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("writes with backup and keeps mode", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "doc.md", "#Title\n", 0o600)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, fsutil.Replace(ctx, snap, []byte("# Title\n"), true))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Title\n", string(got))

		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())

		backup, err := os.ReadFile(fsutil.BackupPath(path))
		require.NoError(t, err)
		assert.Equal(t, "#Title\n", string(backup))
	})

	t.Run("without backup", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "doc.md", "x\n", 0o644)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, fsutil.Replace(ctx, snap, []byte("# Document\n\nx\n"), false))
		assert.NoFileExists(t, fsutil.BackupPath(path))
	})

	t.Run("refuses concurrent modification", func(t *testing.T) {
		t.Parallel()
		path := writeFile(t, "doc.md", "one\n", 0o644)
		_, snap, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("someone else\n"), 0o644))

		err = fsutil.Replace(ctx, snap, []byte("fixed\n"), true)
		require.ErrorIs(t, err, fsutil.ErrConcurrentModification)

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "someone else\n", string(got))
		assert.NoFileExists(t, fsutil.BackupPath(path))
	})
}
