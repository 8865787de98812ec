package interfaces

import (
	"context"

	"github.com/lescientifik/tcia-dl/pkg/domain/model"
)

// DICOMReader reads header metadata from DICOM files on disk
type DICOMReader interface {
	// ReadMeta parses the header of the file at path, without pixel data
	ReadMeta(ctx context.Context, path string) (model.SliceMeta, error)
}
