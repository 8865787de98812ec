package interfaces

import (
	"context"
	"io"

	"github.com/lescientifik/tcia-dl/pkg/domain/model"
)

// TCIAClient defines operations against the TCIA REST API
type TCIAClient interface {
	// DownloadSeries streams the ZIP archive of a series to w and returns
	// the metadata the server declared for it. Nothing is written to w
	// when the series is rejected.
	DownloadSeries(ctx context.Context, seriesUID string, w io.Writer) (*model.SeriesMetadata, error)
}
