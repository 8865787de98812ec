package usecase

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/lescientifik/tcia-dl/pkg/domain/interfaces"
	"github.com/lescientifik/tcia-dl/pkg/domain/model"
	"github.com/lescientifik/tcia-dl/pkg/utils/async"
)

type downloadUseCase struct {
	client interfaces.TCIAClient
}

// NewDownload creates a new instance of DownloadUseCase
func NewDownload(client interfaces.TCIAClient) interfaces.DownloadUseCase {
	return &downloadUseCase{
		client: client,
	}
}

// Run downloads every series listed in the manifest into req.OutDir.
// Each series goes through download -> extract -> remove archive. A failed
// series is recorded in the report and does not stop the others.
func (uc *downloadUseCase) Run(ctx context.Context, req *model.DownloadRequest) (*model.RunReport, error) {
	logger := ctxlog.From(ctx)
	start := time.Now()

	manifestFile, err := os.Open(req.ManifestPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open manifest", goerr.V("manifest", req.ManifestPath))
	}
	manifest, err := model.ParseManifest(manifestFile)
	closeErr := manifestFile.Close()
	if err != nil {
		return nil, err
	}
	if closeErr != nil {
		return nil, goerr.Wrap(closeErr, "failed to close manifest", goerr.V("manifest", req.ManifestPath))
	}

	series := manifest.UniqueSeries()
	if dropped := len(manifest.Series) - len(series); dropped > 0 {
		logger.Warn("Manifest contains duplicate series UIDs, downloading once",
			"duplicates", dropped,
		)
	}

	workers := req.Workers
	if workers <= 0 {
		workers = model.DefaultWorkers
	}

	logger.Info("Starting download run",
		"manifest", req.ManifestPath,
		"out_dir", req.OutDir,
		"series_count", len(series),
		"workers", workers,
	)

	results := make([]model.SeriesDownload, len(series))
	indices := make([]int, len(series))
	for i := range indices {
		indices[i] = i
	}
	errs := async.ForEach(ctx, workers, indices, func(ctx context.Context, i int) error {
		results[i] = uc.processSeries(ctx, req, series[i])
		return results[i].Err
	})
	// items skipped by cancellation never reached processSeries
	for i, err := range errs {
		if results[i].SeriesUID == "" {
			results[i] = model.SeriesDownload{SeriesUID: series[i], Err: err}
		}
	}

	runID := req.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	report := &model.RunReport{
		RunID:    runID,
		OutDir:   req.OutDir,
		Results:  results,
		Duration: time.Since(start),
	}

	uc.warnCollisions(ctx, report)

	logger.Info("Download run finished",
		"succeeded", report.Succeeded(),
		"failed", report.Failed(),
		"total_bytes", report.TotalBytes(),
		"duration", report.Duration.String(),
	)

	return report, nil
}

// processSeries downloads one series archive, extracts it and removes the
// archive unless the request keeps it
func (uc *downloadUseCase) processSeries(ctx context.Context, req *model.DownloadRequest, uid string) model.SeriesDownload {
	logger := ctxlog.From(ctx)
	result := model.SeriesDownload{SeriesUID: uid}

	archivePath := filepath.Join(req.OutDir, uid+".zip")
	result.ArchivePath = archivePath

	logger.Info("Starting series download", "series_uid", uid)

	archive, err := os.Create(archivePath)
	if err != nil {
		result.Err = goerr.Wrap(err, "failed to create archive file", goerr.V("path", archivePath))
		return result
	}

	_, err = uc.client.DownloadSeries(ctx, uid, archive)
	if closeErr := archive.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// drop the partial or empty file, the run must leave no leftovers
		// for a failed series
		if removeErr := os.Remove(archivePath); removeErr != nil && !os.IsNotExist(removeErr) {
			logger.Warn("Failed to remove partial archive", "path", archivePath, "error", removeErr)
		}
		result.ArchivePath = ""
		result.Err = goerr.Wrap(err, "failed to download series", goerr.V("series_uid", uid))
		return result
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		result.Err = goerr.Wrap(err, "failed to stat downloaded archive", goerr.V("path", archivePath))
		return result
	}
	result.ArchiveSize = info.Size()

	logger.Info("Series downloaded",
		"series_uid", uid,
		"path", archivePath,
		"size_bytes", result.ArchiveSize,
	)

	seriesDir := filepath.Join(req.OutDir, uid)
	files, err := ExtractArchive(ctx, archivePath, seriesDir)
	if err != nil {
		result.Err = goerr.Wrap(err, "failed to extract series archive", goerr.V("series_uid", uid))
		return result
	}
	result.Files = files

	if !req.KeepArchive {
		if err := os.Remove(archivePath); err != nil {
			logger.Warn("Failed to remove archive after extraction",
				"path", archivePath,
				"error", err,
			)
		} else {
			result.ArchivePath = ""
		}
	}

	logger.Info("Series extracted",
		"series_uid", uid,
		"dir", seriesDir,
		"file_count", len(files),
	)

	return result
}

// warnCollisions logs extracted file names that appear in more than one
// series, since flattening such output would overwrite slices
func (uc *downloadUseCase) warnCollisions(ctx context.Context, report *model.RunReport) {
	logger := ctxlog.From(ctx)

	seen := map[string]string{}
	for _, result := range report.Results {
		for _, name := range result.Files {
			base := filepath.Base(name)
			if other, ok := seen[base]; ok && other != result.SeriesUID {
				logger.Warn("Extracted file name collides across series",
					"file", base,
					"series_uid", result.SeriesUID,
					"also_in", other,
				)
				continue
			}
			seen[base] = result.SeriesUID
		}
	}
}
