package usecase

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// UnzipDirName is the directory ExtractAll creates below the scanned folder
const UnzipDirName = "unzip"

// ExtractAll walks root recursively, extracts every ZIP archive it finds
// into <root>/unzip/<archive-stem>/ and returns the number of archives
// extracted. Archives are detected by magic bytes, not extension.
func ExtractAll(ctx context.Context, root string) (int, error) {
	logger := ctxlog.From(ctx)

	info, err := os.Stat(root)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to stat folder", goerr.V("folder", root))
	}
	if !info.IsDir() {
		return 0, goerr.New("path is not a directory", goerr.V("folder", root))
	}

	unzipRoot := filepath.Join(root, UnzipDirName)
	if err := os.MkdirAll(unzipRoot, 0o755); err != nil {
		return 0, goerr.Wrap(err, "failed to create unzip directory", goerr.V("dir", unzipRoot))
	}

	extracted := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// never descend into our own output
			if path == unzipRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !IsZipFile(path) {
			return nil
		}

		stem := strings.TrimSuffix(d.Name(), filepath.Ext(d.Name()))
		destDir := filepath.Join(unzipRoot, stem)

		logger.Info("Extracting archive", "archive", path, "dest", destDir)
		if _, err := ExtractArchive(ctx, path, destDir); err != nil {
			return err
		}
		extracted++
		return nil
	})
	if err != nil {
		return extracted, goerr.Wrap(err, "failed to extract archives", goerr.V("folder", root))
	}

	return extracted, nil
}
