package dicomfile

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"

	"github.com/lescientifik/tcia-dl/pkg/domain/interfaces"
	"github.com/lescientifik/tcia-dl/pkg/domain/model"
)

// CorrectedImage (0028,0051) has no generated constant in the tag package
var tagCorrectedImage = tag.Tag{Group: 0x0028, Element: 0x0051}

// indexedTags maps the DICOM keywords of the metadata index to their tags
var indexedTags = []struct {
	keyword string
	tag     tag.Tag
}{
	{model.KeywordSOPInstanceUID, tag.SOPInstanceUID},
	{model.KeywordSeriesInstanceUID, tag.SeriesInstanceUID},
	{model.KeywordStudyInstanceUID, tag.StudyInstanceUID},
	{model.KeywordPatientID, tag.PatientID},
	{model.KeywordModality, tag.Modality},
	{model.KeywordSeriesDescription, tag.SeriesDescription},
	{model.KeywordImageType, tag.ImageType},
	{model.KeywordCorrectedImage, tagCorrectedImage},
	{model.KeywordPatientWeight, tag.PatientWeight},
}

// Reader parses DICOM headers from files
type Reader struct{}

// NewReader creates a DICOM header reader
func NewReader() interfaces.DICOMReader {
	return &Reader{}
}

// ReadMeta parses the DICOM file at path and returns the indexed header
// attributes. Pixel data is skipped, absent attributes are omitted.
func (r *Reader) ReadMeta(_ context.Context, path string) (model.SliceMeta, error) {
	dataset, err := dicom.ParseFile(path, nil, dicom.SkipPixelData())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse DICOM file", goerr.V("path", path))
	}

	meta := model.SliceMeta{}
	for _, entry := range indexedTags {
		element, err := dataset.FindElementByTag(entry.tag)
		if err != nil {
			continue
		}
		values, ok := element.Value.GetValue().([]string)
		if !ok {
			continue
		}
		// values keep their even-length padding on the wire
		for i, v := range values {
			values[i] = strings.TrimRight(v, " \x00")
		}
		meta[entry.keyword] = strings.Join(values, `\`)
	}

	return meta, nil
}
