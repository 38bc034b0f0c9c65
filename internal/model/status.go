package model

// TaskStatus represents the status of a download or extraction task
type TaskStatus string

const (
	// TaskStatusPending means the task is created but its worker has not run yet
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusStarting means the worker is preparing (connecting, opening the archive)
	TaskStatusStarting TaskStatus = "Starting"

	// TaskStatusDownloading means bytes are being streamed to disk
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusExtracting means archive entries are being written
	TaskStatusExtracting TaskStatus = "Extracting"

	// TaskStatusCompleted means the task finished successfully
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "Error"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusStarting || ts == TaskStatusDownloading || ts == TaskStatusExtracting
}

// IsFinished returns true if the task is in a finished state (completed or error)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}
