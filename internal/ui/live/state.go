package live

import (
	"time"

	"visval/internal/runner"
)

// FileRow holds UI state for a single image file.
type FileRow struct {
	Index      int
	Filename   string
	Status     runner.FileEventType
	Label      string
	Confidence *float64
	StartedAt  time.Time
	FinishedAt time.Time
	Error      string
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Queued     int
	Uploading  int
	Done       int
	Classified int
	Failed     int
}

// State captures the live UI state for a validation run.
type State struct {
	RunID     string
	InputRoot string
	Directory string
	Label     string
	Files     int
	StartedAt time.Time
	LastEvent string
	Rows      []FileRow
	Counts    StatusCounts
}
