package download

import (
	"github.com/ytget/silk-installer/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	// SetUpdateCallback registers the receiver of task snapshots. It is
	// invoked from the worker goroutine.
	SetUpdateCallback(func(*model.DownloadTask))

	// Start begins downloading url into dest in the background
	Start(url, dest string) (*model.DownloadTask, error)

	GetTask(id string) (*model.DownloadTask, bool)
}
