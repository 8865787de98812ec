package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
)

// SeriesMetadata represents the JSON carried by the "metadata" response
// header of the TCIA getImage endpoint
type SeriesMetadata struct {
	Result MetadataResult `json:"Result"`
}

// MetadataResult describes the payload the server is about to send
type MetadataResult struct {
	Type []string `json:"Type"`
}

// ParseSeriesMetadata parses the raw "metadata" response header value
func ParseSeriesMetadata(raw string) (*SeriesMetadata, error) {
	var meta SeriesMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, goerr.Wrap(err, "failed to parse metadata header", goerr.V("metadata", raw))
	}
	return &meta, nil
}

// IsZip reports whether the server declared the payload as a ZIP archive.
// Anything else means the requested SeriesInstanceUID is not downloadable.
func (m *SeriesMetadata) IsZip() bool {
	return len(m.Result.Type) > 0 && m.Result.Type[0] == "ZIP"
}
