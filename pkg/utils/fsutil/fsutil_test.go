package fsutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/lescientifik/tcia-dl/pkg/utils/fsutil"
)

func TestMkdirSafe(t *testing.T) {
	t.Run("creates a new directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "out")
		gt.NoError(t, fsutil.MkdirSafe(dir))

		info, err := os.Stat(dir)
		gt.NoError(t, err)
		gt.Value(t, info.IsDir()).Equal(true)
	})

	t.Run("accepts an existing empty directory", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, fsutil.MkdirSafe(dir))
	})

	t.Run("rejects a non-empty directory", func(t *testing.T) {
		dir := t.TempDir()
		gt.NoError(t, os.WriteFile(filepath.Join(dir, "leftover.txt"), []byte("x"), 0o644))

		err := fsutil.MkdirSafe(dir)
		gt.Error(t, err)
		gt.Value(t, errors.Is(err, fsutil.ErrDirectoryNotEmpty)).Equal(true)
	})

	t.Run("rejects a regular file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "file.txt")
		gt.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		gt.Error(t, fsutil.MkdirSafe(path))
	})
}

func TestIsEmpty(t *testing.T) {
	dir := t.TempDir()

	empty, err := fsutil.IsEmpty(dir)
	gt.NoError(t, err)
	gt.Value(t, empty).Equal(true)

	gt.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("x"), 0o644))

	empty, err = fsutil.IsEmpty(dir)
	gt.NoError(t, err)
	gt.Value(t, empty).Equal(false)
}

func TestMove(t *testing.T) {
	t.Run("moves into a missing directory tree", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.txt")
		gt.NoError(t, os.WriteFile(src, []byte("content"), 0o644))

		dest := filepath.Join(dir, "nested", "deeper", "dest.txt")
		gt.NoError(t, fsutil.Move(src, dest))

		data, err := os.ReadFile(dest)
		gt.NoError(t, err)
		gt.String(t, string(data)).Equal("content")

		_, err = os.Stat(src)
		gt.Value(t, os.IsNotExist(err)).Equal(true)
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "src.txt")
		dest := filepath.Join(dir, "dest.txt")
		gt.NoError(t, os.WriteFile(src, []byte("new"), 0o644))
		gt.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

		gt.Error(t, fsutil.Move(src, dest))

		data, err := os.ReadFile(dest)
		gt.NoError(t, err)
		gt.String(t, string(data)).Equal("old")
	})
}
