package live

import "visval/internal/runner"

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventRunStart signals the start of a run.
	EventRunStart EventKind = iota
	// EventCategoryStart signals the start of a category directory.
	EventCategoryStart
	// EventFile delivers a file status update.
	EventFile
	// EventCategoryEnd signals category completion.
	EventCategoryEnd
	// EventRunEnd signals run completion.
	EventRunEnd
)

// Event carries a UI update payload.
type Event struct {
	Kind       EventKind
	RunID      string
	InputRoot  string
	Directory  string
	Label      string
	Files      int
	Classified int
	Failed     int
	Skipped    int
	File       runner.FileEvent
}
