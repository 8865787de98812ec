package interfaces

import (
	"context"

	"github.com/lescientifik/tcia-dl/pkg/domain/model"
)

// DownloadUseCase defines the manifest download pipeline
type DownloadUseCase interface {
	// Run downloads every series of the manifest into the destination
	// directory and extracts the archives. Per-series failures are
	// recorded in the report, not returned as an error.
	Run(ctx context.Context, req *model.DownloadRequest) (*model.RunReport, error)
}

// IndexUseCase defines the DICOM metadata CSV indexer
type IndexUseCase interface {
	// BuildIndex scans a folder for DICOM files and writes one CSV row
	// per readable file
	BuildIndex(ctx context.Context, req *model.IndexRequest) (*model.IndexReport, error)
}
