package extract

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ytget/silk-installer/internal/logging"
	"github.com/ytget/silk-installer/internal/model"
)

// TaskIDPrefix prefixes extraction task IDs
const TaskIDPrefix = "extract-"

// Service handles archive extraction, one archive at a time
type Service struct {
	tasks      map[string]*model.ExtractionTask
	tasksMutex sync.RWMutex
	active     bool
	onUpdate   func(*model.ExtractionTask) // callback for UI updates
	log        zerolog.Logger
}

// NewService creates a new extraction service
func NewService() *Service {
	return &Service{
		tasks: make(map[string]*model.ExtractionTask),
		log:   logging.Get("extract"),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(*model.ExtractionTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// StartExtraction starts unpacking archivePath into targetDir in the background
func (s *Service) StartExtraction(archivePath, targetDir string) (*model.ExtractionTask, error) {
	if targetDir == "" {
		return nil, fmt.Errorf("target directory is empty")
	}
	if _, err := os.Stat(archivePath); err != nil {
		return nil, fmt.Errorf("archive is not available: %w", err)
	}

	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	if s.active {
		return nil, fmt.Errorf("extraction already in progress")
	}

	task := &model.ExtractionTask{
		ID:          generateTaskID(),
		ArchivePath: archivePath,
		TargetDir:   targetDir,
		Status:      model.TaskStatusPending,
		StartedAt:   time.Now(),
	}
	s.tasks[task.ID] = task
	s.active = true

	go s.run(task)

	snapshot := *task
	return &snapshot, nil
}

// GetTask returns a snapshot of an extraction task by ID
func (s *Service) GetTask(taskID string) (*model.ExtractionTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[taskID]
	if !exists {
		return nil, false
	}
	snapshot := *task
	return &snapshot, true
}

// run performs the extraction
func (s *Service) run(task *model.ExtractionTask) {
	s.tasksMutex.Lock()
	task.Status = model.TaskStatusStarting
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	s.log.Info().Str("task", task.ID).Str("archive", task.ArchivePath).Str("target", task.TargetDir).Msg("Starting extraction")

	written, err := Extract(context.Background(), task.ArchivePath, task.TargetDir, func(done, total int) {
		s.tasksMutex.Lock()
		task.Status = model.TaskStatusExtracting
		task.FilesDone = done
		task.FilesTotal = total
		if total > 0 {
			task.Progress = float64(done) / float64(total)
			task.Percent = done * 100 / total
		}
		s.tasksMutex.Unlock()
		s.notifyUpdate(task)
	})

	s.tasksMutex.Lock()
	if err != nil {
		task.Status = model.TaskStatusError
		task.LastError = err.Error()
	} else {
		task.Status = model.TaskStatusCompleted
		task.FilesDone = written
		task.Progress = 1.0
		task.Percent = 100
	}
	task.FinishedAt = time.Now()
	s.active = false
	s.tasksMutex.Unlock()

	if err != nil {
		s.log.Error().Err(err).Str("task", task.ID).Msg("Extraction failed")
	} else {
		s.log.Info().Str("task", task.ID).Int("files", written).Msg("Extraction completed")
	}

	s.notifyUpdate(task)
}

// notifyUpdate hands a copy of the task to the update callback
func (s *Service) notifyUpdate(task *model.ExtractionTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(&snapshot)
	}
}

// generateTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
