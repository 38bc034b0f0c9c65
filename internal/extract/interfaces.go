package extract

import (
	"github.com/ytget/silk-installer/internal/model"
)

// Extractor defines the interface for the extraction service.
type Extractor interface {
	SetUpdateCallback(func(*model.ExtractionTask))
	StartExtraction(archivePath, targetDir string) (*model.ExtractionTask, error)
	GetTask(taskID string) (*model.ExtractionTask, bool)
}
