package usecase

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// ExtractArchive extracts the ZIP archive at archivePath into destDir and
// returns the archive entry names. destDir is created if missing.
func ExtractArchive(ctx context.Context, archivePath, destDir string) ([]string, error) {
	logger := ctxlog.From(ctx)

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open zip archive", goerr.V("archive", archivePath))
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create destination directory", goerr.V("dest", destDir))
	}

	names := make([]string, 0, len(reader.File))
	for _, file := range reader.File {
		if err := extractEntry(file, destDir); err != nil {
			return nil, goerr.Wrap(err, "failed to extract archive entry",
				goerr.V("archive", archivePath),
				goerr.V("entry", file.Name),
			)
		}
		names = append(names, file.Name)
	}

	logger.Debug("Extracted archive",
		"archive", archivePath,
		"dest", destDir,
		"entries", len(names),
	)

	return names, nil
}

// extractEntry writes a single ZIP entry below destDir
func extractEntry(file *zip.File, destDir string) error {
	// prevent path traversal through crafted entry names
	destPath := filepath.Join(destDir, file.Name)
	if !strings.HasPrefix(destPath, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return goerr.New("entry escapes destination directory",
			goerr.V("entry", file.Name),
			goerr.V("dest", destPath),
		)
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, file.FileInfo().Mode())
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create parent directories")
	}

	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open entry")
	}
	defer rc.Close()

	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.FileInfo().Mode())
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file")
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return goerr.Wrap(err, "failed to copy entry content")
	}

	return nil
}

// zipMagic is the local file header signature of a ZIP archive
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// IsZipFile reports whether the file starts with the ZIP magic bytes
func IsZipFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	head := make([]byte, len(zipMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return string(head) == string(zipMagic)
}
