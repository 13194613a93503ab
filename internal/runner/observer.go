package runner

import "time"

// FileEventType identifies a file status update for observers.
type FileEventType string

const (
	// FileQueued marks a file discovered but not yet uploaded.
	FileQueued FileEventType = "queued"
	// FileUploading marks an upload in progress.
	FileUploading FileEventType = "uploading"
	// FileClassified marks a successful classification.
	FileClassified FileEventType = "classified"
	// FileFailed marks a failed classification recorded as a placeholder.
	FileFailed FileEventType = "failed"
)

// FileEvent carries a single status update for a file.
type FileEvent struct {
	Directory  string
	FileIndex  int
	Filename   string
	Type       FileEventType
	Label      string
	Confidence *float64
	Duration   time.Duration
	Error      string
	EmittedAt  time.Time
}

// RunObserver receives run lifecycle events for UI or logging.
type RunObserver interface {
	// OnRunStart signals the start of a run.
	OnRunStart(runID string, inputRoot string)
	// OnCategoryStart signals the start of a category directory.
	OnCategoryStart(directory string, label string, files int)
	// OnFileEvent delivers a file status update.
	OnFileEvent(event FileEvent)
	// OnCategoryEnd signals category completion.
	OnCategoryEnd(directory string, classified, failed, skipped int)
	// OnRunEnd signals run completion.
	OnRunEnd(results Results)
}
