package model

import "time"

// DownloadRequest describes one download run over a manifest
type DownloadRequest struct {
	RunID        string // Caller-assigned run identifier, generated when empty
	ManifestPath string // Path to the *.tcia manifest file
	OutDir       string // Destination directory (must exist and be writable)
	Workers      int    // Concurrent downloads, 0 means DefaultWorkers
	KeepArchive  bool   // Keep the .zip archives after extraction
}

// DefaultWorkers is the number of concurrent series downloads
const DefaultWorkers = 6

// SeriesDownload represents the outcome of a single series download and
// extraction
type SeriesDownload struct {
	SeriesUID   string   // SeriesInstanceUID
	ArchivePath string   // Path of the downloaded .zip (may be removed after extraction)
	ArchiveSize int64    // Size of the downloaded archive in bytes
	Files       []string // Extracted file names, relative to the series directory
	Err         error    // Non-nil when the series failed
}

// RunReport aggregates the results of a download run
type RunReport struct {
	RunID    string
	OutDir   string
	Results  []SeriesDownload
	Duration time.Duration
}

// Succeeded returns the number of series downloaded and extracted
func (r *RunReport) Succeeded() int {
	n := 0
	for _, result := range r.Results {
		if result.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of series that could not be processed
func (r *RunReport) Failed() int {
	return len(r.Results) - r.Succeeded()
}

// TotalBytes returns the sum of downloaded archive sizes
func (r *RunReport) TotalBytes() int64 {
	var total int64
	for _, result := range r.Results {
		total += result.ArchiveSize
	}
	return total
}
