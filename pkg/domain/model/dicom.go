package model

import (
	"regexp"
	"strings"
)

// DICOM header keywords used by the metadata index and the slice filters
const (
	KeywordSOPInstanceUID    = "SOPInstanceUID"
	KeywordSeriesInstanceUID = "SeriesInstanceUID"
	KeywordStudyInstanceUID  = "StudyInstanceUID"
	KeywordPatientID         = "PatientID"
	KeywordModality          = "Modality"
	KeywordSeriesDescription = "SeriesDescription"
	KeywordImageType         = "ImageType"
	KeywordCorrectedImage    = "CorrectedImage"
	KeywordPatientWeight     = "PatientWeight"
)

// SliceMeta holds the header values of a single DICOM file, keyed by DICOM
// keyword. Multi-valued attributes are joined with "\" as in the DICOM
// encoding itself.
type SliceMeta map[string]string

var nonAlphaNum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// multiValues splits a raw multi-valued attribute
func (m SliceMeta) multiValues(keyword string) []string {
	raw, ok := m[keyword]
	if !ok || raw == "" {
		return nil
	}
	return strings.Split(raw, `\`)
}

func (m SliceMeta) contains(keyword, value string) bool {
	for _, v := range m.multiValues(keyword) {
		if v == value {
			return true
		}
	}
	return false
}

// IsOriginalImage reports whether the slice is an ORIGINAL acquisition of a
// CT, PT or MR series. Derived and secondary captures are rejected.
func (m SliceMeta) IsOriginalImage() bool {
	modality := m[KeywordModality]
	if modality != "CT" && modality != "PT" && modality != "MR" {
		return false
	}
	return m.contains(KeywordImageType, "ORIGINAL")
}

// IsAttnCorrected reports whether a PT slice is attenuation corrected.
// Non-PT modalities always pass. The check combines the CorrectedImage
// attribute (when present) with a scan of the series description for
// common "no attenuation correction" spellings.
func (m SliceMeta) IsAttnCorrected() bool {
	if m[KeywordModality] != "PT" {
		return true
	}

	if _, ok := m[KeywordCorrectedImage]; ok {
		if !m.contains(KeywordCorrectedImage, "ATTN") {
			return false
		}
	}

	desc := strings.ToLower(nonAlphaNum.ReplaceAllString(m[KeywordSeriesDescription], ""))
	for _, pattern := range []string{"noac", "nac", "noattn"} {
		if strings.Contains(desc, pattern) {
			return false
		}
	}
	return true
}

// HasSupportedModality reports whether the slice belongs to one of the
// modalities the pipeline knows how to handle
func (m SliceMeta) HasSupportedModality() bool {
	switch m[KeywordModality] {
	case "RTSTRUCT", "CT", "PT", "SEG", "MR":
		return true
	default:
		return false
	}
}

// Keep applies all slice filters and reports whether the slice should be
// retained for further processing
func (m SliceMeta) Keep() bool {
	return m.HasSupportedModality() && m.IsOriginalImage() && m.IsAttnCorrected()
}
