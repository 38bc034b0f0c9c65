package model

import (
	"errors"
	"fmt"
)

// Stage is a visible step of the installer. Each stage shows exactly one
// action control.
type Stage int

const (
	StageWelcome Stage = iota
	StageDownload
	StageExtract
	StageDone
)

// String returns a human-friendly stage name
func (s Stage) String() string {
	switch s {
	case StageWelcome:
		return "Welcome"
	case StageDownload:
		return "Download"
	case StageExtract:
		return "Extract"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

var (
	// ErrInvalidTransition is returned when an action does not belong to the current stage
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrBusy is returned when the stage's operation is already running
	ErrBusy = errors.New("operation already in progress")

	// ErrNoArchive is returned when extraction is requested before a download finished
	ErrNoArchive = errors.New("no downloaded archive")
)

// Flow tracks the linear installer progression
// Welcome -> Download -> Extract -> Done. It is owned by the UI and must only
// be mutated from the UI goroutine.
type Flow struct {
	stage        Stage
	busy         bool
	downloadPath string
	targetDir    string
}

// NewFlow returns a flow positioned at the welcome stage
func NewFlow() *Flow {
	return &Flow{stage: StageWelcome}
}

// Stage returns the current stage
func (f *Flow) Stage() Stage {
	return f.stage
}

// Busy reports whether the current stage's operation is in flight
func (f *Flow) Busy() bool {
	return f.busy
}

// DownloadPath returns the path of the downloaded archive, empty until a
// download succeeded.
func (f *Flow) DownloadPath() string {
	return f.downloadPath
}

// TargetDir returns the directory of the last extraction request
func (f *Flow) TargetDir() string {
	return f.targetDir
}

// Start leaves the welcome stage
func (f *Flow) Start() error {
	if f.stage != StageWelcome {
		return fmt.Errorf("start from %s: %w", f.stage, ErrInvalidTransition)
	}
	f.stage = StageDownload
	return nil
}

// BeginDownload marks the download as running
func (f *Flow) BeginDownload() error {
	if f.stage != StageDownload {
		return fmt.Errorf("download from %s: %w", f.stage, ErrInvalidTransition)
	}
	if f.busy {
		return ErrBusy
	}
	f.busy = true
	return nil
}

// DownloadSucceeded records the archive location and advances to extraction
func (f *Flow) DownloadSucceeded(path string) error {
	if f.stage != StageDownload || !f.busy {
		return fmt.Errorf("download completion in %s: %w", f.stage, ErrInvalidTransition)
	}
	if path == "" {
		return ErrNoArchive
	}
	f.downloadPath = path
	f.busy = false
	f.stage = StageExtract
	return nil
}

// DownloadFailed returns the flow to a retryable download stage
func (f *Flow) DownloadFailed() {
	if f.stage == StageDownload {
		f.busy = false
	}
}

// BeginExtract marks the extraction into dir as running
func (f *Flow) BeginExtract(dir string) error {
	if f.stage != StageExtract {
		return fmt.Errorf("extract from %s: %w", f.stage, ErrInvalidTransition)
	}
	if f.busy {
		return ErrBusy
	}
	if f.downloadPath == "" {
		return ErrNoArchive
	}
	f.targetDir = dir
	f.busy = true
	return nil
}

// ExtractSucceeded finishes the flow
func (f *Flow) ExtractSucceeded() error {
	if f.stage != StageExtract || !f.busy {
		return fmt.Errorf("extract completion in %s: %w", f.stage, ErrInvalidTransition)
	}
	f.busy = false
	f.stage = StageDone
	return nil
}

// ExtractFailed keeps the flow at the extract stage so the user can pick again
func (f *Flow) ExtractFailed() {
	if f.stage == StageExtract {
		f.busy = false
	}
}
