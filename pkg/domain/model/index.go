package model

// IndexRequest describes a DICOM metadata indexing run
type IndexRequest struct {
	Root       string // Folder to scan recursively for .dcm files
	OutPath    string // Destination CSV path
	Jobs       int    // Concurrent header readers, 0 means DefaultIndexJobs
	WithFilter bool   // Add a "keep" column from the slice filters
}

// DefaultIndexJobs is the number of concurrent DICOM header readers
const DefaultIndexJobs = 4

// IndexReport summarizes a DICOM metadata indexing run
type IndexReport struct {
	OutPath string // CSV file written
	Indexed int    // Files with a row in the CSV
	Skipped int    // Files that could not be parsed
}
