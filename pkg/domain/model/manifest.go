package model

import (
	"bufio"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// SeriesListMarker is the manifest line that separates header fields from
// the list of SeriesInstanceUIDs
const SeriesListMarker = "ListOfSeriesToDownload="

// ErrNoSeriesMarker is returned when a manifest file does not contain the
// ListOfSeriesToDownload= marker line
var ErrNoSeriesMarker = goerr.New("manifest has no " + SeriesListMarker + " marker line")

// Manifest represents a parsed TCIA/NBIA manifest file (*.tcia)
type Manifest struct {
	Headers map[string]string // key=value lines before the series marker
	Series  []string          // SeriesInstanceUIDs in file order, duplicates preserved
}

// ParseManifest parses a TCIA manifest. The file is plain text: key=value
// header lines up to the literal line "ListOfSeriesToDownload=", then one
// SeriesInstanceUID per line. CRLF endings and blank lines are tolerated.
func ParseManifest(r io.Reader) (*Manifest, error) {
	manifest := &Manifest{
		Headers: map[string]string{},
	}

	scanner := bufio.NewScanner(r)
	inSeries := false
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if !inSeries {
			if line == SeriesListMarker {
				inSeries = true
				continue
			}
			if key, value, ok := strings.Cut(line, "="); ok {
				manifest.Headers[key] = value
			}
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		manifest.Series = append(manifest.Series, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read manifest")
	}

	if !inSeries {
		return nil, goerr.Wrap(ErrNoSeriesMarker, "invalid manifest file")
	}

	return manifest, nil
}

// UniqueSeries returns the series UIDs with duplicates removed, keeping the
// first occurrence order
func (m *Manifest) UniqueSeries() []string {
	seen := make(map[string]bool, len(m.Series))
	unique := make([]string, 0, len(m.Series))
	for _, uid := range m.Series {
		if seen[uid] {
			continue
		}
		seen[uid] = true
		unique = append(unique, uid)
	}
	return unique
}
