package fsutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
)

// ErrDirectoryNotEmpty is returned by MkdirSafe when the destination
// already exists and contains files
var ErrDirectoryNotEmpty = goerr.New("directory exists and is not empty")

// MkdirSafe creates the directory at path. An existing empty directory is
// accepted; an existing non-empty one is an error so a download run never
// mixes its output with unrelated files.
func MkdirSafe(path string) error {
	err := os.Mkdir(path, 0o755)
	if err == nil {
		return nil
	}
	if !os.IsExist(err) {
		return goerr.Wrap(err, "failed to create directory", goerr.V("path", path))
	}

	info, err := os.Stat(path)
	if err != nil {
		return goerr.Wrap(err, "failed to stat existing path", goerr.V("path", path))
	}
	if !info.IsDir() {
		return goerr.New("path exists and is not a directory", goerr.V("path", path))
	}

	empty, err := IsEmpty(path)
	if err != nil {
		return err
	}
	if !empty {
		return goerr.Wrap(ErrDirectoryNotEmpty, "refusing to reuse directory", goerr.V("path", path))
	}
	return nil
}

// IsEmpty reports whether the directory contains no entries
func IsEmpty(dir string) (bool, error) {
	f, err := os.Open(dir)
	if err != nil {
		return false, goerr.Wrap(err, "failed to open directory", goerr.V("path", dir))
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to read directory", goerr.V("path", dir))
	}
	return false, nil
}

// Ensure creates the parent directories of path and returns path unchanged
func Ensure(path string) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", goerr.Wrap(err, "failed to create parent directories", goerr.V("path", path))
	}
	return path, nil
}

// Move renames oldPath to newPath, creating parent directories as needed.
// Unlike os.Rename it refuses to overwrite an existing file.
func Move(oldPath, newPath string) error {
	if _, err := os.Stat(newPath); err == nil {
		return goerr.New("destination already exists", goerr.V("path", newPath))
	} else if !os.IsNotExist(err) {
		return goerr.Wrap(err, "failed to stat destination", goerr.V("path", newPath))
	}

	dest, err := Ensure(newPath)
	if err != nil {
		return err
	}
	if err := os.Rename(oldPath, dest); err != nil {
		return goerr.Wrap(err, "failed to move file",
			goerr.V("from", oldPath),
			goerr.V("to", dest),
		)
	}
	return nil
}
