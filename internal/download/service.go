package download

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ytget/silk-installer/internal/logging"
	"github.com/ytget/silk-installer/internal/model"
)

// Service constants
const (
	TaskIDPrefix            = "download-"
	DefaultProgressInterval = 200 * time.Millisecond
)

// Service runs downloads on worker goroutines, one at a time
type Service struct {
	client           *http.Client
	tasks            map[string]*model.DownloadTask
	tasksMutex       sync.RWMutex
	active           bool
	progressInterval time.Duration
	onUpdate         func(*model.DownloadTask) // callback for UI updates
	log              zerolog.Logger
}

// NewService creates a new download service. A nil client uses
// NewHTTPClient with default settings.
func NewService(client *http.Client) *Service {
	if client == nil {
		client = NewHTTPClient(ClientConfig{})
	}
	return &Service{
		client:           client,
		tasks:            make(map[string]*model.DownloadTask),
		progressInterval: DefaultProgressInterval,
		log:              logging.Get("download"),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// SetProgressInterval sets the minimum time between progress notifications.
// Status changes are always delivered.
func (s *Service) SetProgressInterval(interval time.Duration) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.progressInterval = interval
}

// Start begins downloading rawURL into dest. Only one download may be active.
func (s *Service) Start(rawURL, dest string) (*model.DownloadTask, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	if dest == "" {
		return nil, fmt.Errorf("destination path is empty")
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	if s.active {
		return nil, fmt.Errorf("download already in progress")
	}

	task := &model.DownloadTask{
		ID:         generateTaskID(),
		URL:        rawURL,
		OutputPath: dest,
		Status:     model.TaskStatusPending,
		TotalBytes: -1,
		ETASec:     -1,
		StartedAt:  time.Now(),
	}
	s.tasks[task.ID] = task
	s.active = true

	go s.run(task)

	snapshot := *task
	return &snapshot, nil
}

// GetTask returns a snapshot of a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

// run performs the download and publishes the final state
func (s *Service) run(task *model.DownloadTask) {
	s.setStatus(task, model.TaskStatusStarting)
	s.log.Info().Str("task", task.ID).Str("output", task.OutputPath).Msg("Starting download")

	s.tasksMutex.RLock()
	limiter := rate.NewLimiter(rate.Every(s.progressInterval), 1)
	s.tasksMutex.RUnlock()

	started := time.Now()
	written, err := Fetch(context.Background(), s.client, task.URL, task.OutputPath, func(done, total int64) {
		s.tasksMutex.Lock()
		statusChanged := task.Status != model.TaskStatusDownloading
		task.Status = model.TaskStatusDownloading
		updateTaskProgress(task, done, total, time.Since(started))
		s.tasksMutex.Unlock()

		if statusChanged || limiter.Allow() {
			s.notifyUpdate(task)
		}
	})

	s.tasksMutex.Lock()
	if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	} else {
		task.Status = model.TaskStatusCompleted
		task.BytesDone = written
		if task.TotalBytes < 0 {
			task.TotalBytes = written
		}
		task.Progress = 1.0
		task.Percent = 100
		task.ETASec = -1
	}
	task.FinishedAt = time.Now()
	s.active = false
	s.tasksMutex.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("task", task.ID).Msg("Download failed")
	} else {
		s.log.Info().Str("task", task.ID).Int64("bytes", written).Dur("elapsed", time.Since(started)).Msg("Download completed")
	}

	s.notifyUpdate(task)
}

// updateTaskProgress recomputes percentage, speed and ETA. Caller holds the lock.
func updateTaskProgress(task *model.DownloadTask, done, total int64, elapsed time.Duration) {
	task.BytesDone = done
	task.TotalBytes = total

	if total > 0 {
		progress := float64(done) / float64(total)
		if progress > 1.0 {
			progress = 1.0
		}
		task.Progress = progress
		task.Percent = int(progress * 100)
	}

	if elapsed.Seconds() > 0 && done > 0 {
		bytesPerSecond := float64(done) / elapsed.Seconds()
		task.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
		if total > 0 && bytesPerSecond > 0 {
			task.ETASec = int(float64(total-done) / bytesPerSecond)
		}
	}
}

func (s *Service) setStatus(task *model.DownloadTask, status model.TaskStatus) {
	s.tasksMutex.Lock()
	task.Status = status
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// notifyUpdate hands a copy of the task to the update callback
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// validateURL accepts absolute http and https URLs only
func validateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("download URL is empty")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid download URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if parsed.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// generateTaskID generates a unique task ID using UUID v7
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
