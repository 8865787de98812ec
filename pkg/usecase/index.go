package usecase

import (
	"context"
	"encoding/csv"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/lescientifik/tcia-dl/pkg/domain/interfaces"
	"github.com/lescientifik/tcia-dl/pkg/domain/model"
	"github.com/lescientifik/tcia-dl/pkg/utils/async"
)

// indexColumns is the fixed CSV column order, file path first
var indexColumns = []string{
	"file",
	model.KeywordSOPInstanceUID,
	model.KeywordSeriesInstanceUID,
	model.KeywordStudyInstanceUID,
	model.KeywordPatientID,
	model.KeywordModality,
	model.KeywordSeriesDescription,
	model.KeywordImageType,
	model.KeywordCorrectedImage,
	model.KeywordPatientWeight,
}

type indexUseCase struct {
	reader interfaces.DICOMReader
}

// NewIndex creates a new instance of IndexUseCase
func NewIndex(reader interfaces.DICOMReader) interfaces.IndexUseCase {
	return &indexUseCase{
		reader: reader,
	}
}

// BuildIndex walks req.Root for DICOM files and writes one CSV row per
// readable file. Unreadable files are logged and counted as skipped.
func (uc *indexUseCase) BuildIndex(ctx context.Context, req *model.IndexRequest) (*model.IndexReport, error) {
	logger := ctxlog.From(ctx)

	files, err := findDICOMFiles(req.Root)
	if err != nil {
		return nil, err
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = model.DefaultIndexJobs
	}

	logger.Info("Indexing DICOM files",
		"root", req.Root,
		"file_count", len(files),
		"jobs", jobs,
	)

	metas := make([]model.SliceMeta, len(files))
	indices := make([]int, len(files))
	for i := range indices {
		indices[i] = i
	}
	errs := async.ForEach(ctx, jobs, indices, func(ctx context.Context, i int) error {
		meta, err := uc.reader.ReadMeta(ctx, files[i])
		if err != nil {
			return err
		}
		metas[i] = meta
		return nil
	})

	outPath := req.OutPath
	if outPath == "" {
		outPath = filepath.Join(req.Root, "metadatas.csv")
	}

	out, err := os.Create(outPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create index file", goerr.V("path", outPath))
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	header := indexColumns
	if req.WithFilter {
		header = append(append([]string{}, indexColumns...), "keep")
	}
	if err := writer.Write(header); err != nil {
		return nil, goerr.Wrap(err, "failed to write index header")
	}

	report := &model.IndexReport{OutPath: outPath}
	for i, path := range files {
		if errs[i] != nil {
			logger.Warn("Skipping unreadable DICOM file", "path", path, "error", errs[i])
			report.Skipped++
			continue
		}

		row := make([]string, 0, len(header))
		row = append(row, path)
		for _, col := range indexColumns[1:] {
			row = append(row, metas[i][col])
		}
		if req.WithFilter {
			row = append(row, strconv.FormatBool(metas[i].Keep()))
		}
		if err := writer.Write(row); err != nil {
			return nil, goerr.Wrap(err, "failed to write index row", goerr.V("path", path))
		}
		report.Indexed++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, goerr.Wrap(err, "failed to flush index file", goerr.V("path", outPath))
	}
	if err := out.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to close index file", goerr.V("path", outPath))
	}

	logger.Info("Index written",
		"path", outPath,
		"indexed", report.Indexed,
		"skipped", report.Skipped,
	)

	return report, nil
}

// findDICOMFiles collects *.dcm files under root in deterministic order
func findDICOMFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".dcm") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to scan folder", goerr.V("root", root))
	}
	return files, nil
}
