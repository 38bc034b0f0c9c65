package model

import (
	"fmt"
	"path/filepath"
	"time"
)

// Byte size formatting
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// DownloadTask represents the single archive download
type DownloadTask struct {
	ID         string
	URL        string
	OutputPath string // where the archive is written
	Status     TaskStatus
	BytesDone  int64
	TotalBytes int64   // -1 if the server did not send Content-Length
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	Speed      string  // human readable speed (e.g., "1.2MB/s")
	ETASec     int     // ETA in seconds, -1 if unknown
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// ExtractionTask represents unpacking the downloaded archive into a directory
type ExtractionTask struct {
	ID          string
	ArchivePath string
	TargetDir   string
	Status      TaskStatus
	FilesDone   int
	FilesTotal  int
	Progress    float64 // 0.0 to 1.0
	Percent     int     // 0 to 100
	LastError   string  // last error message if any
	StartedAt   time.Time
	FinishedAt  time.Time
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (dt *DownloadTask) GetETAString() string {
	if dt.ETASec <= 0 {
		return "—"
	}

	hours := dt.ETASec / 3600
	minutes := (dt.ETASec % 3600) / 60
	seconds := dt.ETASec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetSizeString returns "done / total" in human readable units. The total is
// omitted when unknown.
func (dt *DownloadTask) GetSizeString() string {
	if dt.TotalBytes <= 0 {
		return FormatFileSize(dt.BytesDone)
	}
	return FormatFileSize(dt.BytesDone) + " / " + FormatFileSize(dt.TotalBytes)
}

// GetFileName returns the base name of the output file
func (dt *DownloadTask) GetFileName() string {
	if dt.OutputPath == "" {
		return ""
	}
	return filepath.Base(dt.OutputPath)
}

// FormatFileSize formats file size in bytes to human readable format
func FormatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}
