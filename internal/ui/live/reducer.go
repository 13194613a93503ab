package live

import (
	"fmt"

	"visval/internal/runner"
)

// Reduce applies a file event to the UI state.
func Reduce(state State, event runner.FileEvent) State {
	state = ensureRow(state, event)
	state = applyFileEvent(state, event)
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRow grows the state rows to include the target index.
func ensureRow(state State, event runner.FileEvent) State {
	if event.FileIndex < 0 {
		return state
	}
	if event.FileIndex < len(state.Rows) {
		return state
	}
	rows := make([]FileRow, event.FileIndex+1)
	copy(rows, state.Rows)
	for i := len(state.Rows); i < len(rows); i++ {
		rows[i] = FileRow{Index: i, Status: runner.FileQueued}
	}
	state.Rows = rows
	return state
}

// applyFileEvent updates a row with the given event.
func applyFileEvent(state State, event runner.FileEvent) State {
	if event.FileIndex < 0 || event.FileIndex >= len(state.Rows) {
		return state
	}
	row := state.Rows[event.FileIndex]
	if row.Filename == "" {
		row.Filename = event.Filename
	}
	row.Status = event.Type
	if event.Type == runner.FileUploading && row.StartedAt.IsZero() {
		row.StartedAt = event.EmittedAt
	}
	if isTerminalStatus(event.Type) {
		if !event.EmittedAt.IsZero() {
			row.FinishedAt = event.EmittedAt
		}
		row.Label = event.Label
		row.Confidence = event.Confidence
		row.Error = event.Error
	}
	state.Rows[event.FileIndex] = row
	return state
}

// isTerminalStatus reports whether a status is final.
func isTerminalStatus(status runner.FileEventType) bool {
	switch status {
	case runner.FileClassified, runner.FileFailed:
		return true
	default:
		return false
	}
}

// recount recomputes status counts for the current rows.
func recount(rows []FileRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case runner.FileQueued:
			counts.Queued++
		case runner.FileUploading:
			counts.Uploading++
		case runner.FileClassified:
			counts.Done++
			counts.Classified++
		case runner.FileFailed:
			counts.Done++
			counts.Failed++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event runner.FileEvent) string {
	switch event.Type {
	case runner.FileUploading:
		return fmt.Sprintf("%s uploading", event.Filename)
	case runner.FileClassified:
		if event.Confidence != nil {
			return fmt.Sprintf("%s classified as %s (%.2f)", event.Filename, event.Label, *event.Confidence)
		}
		return fmt.Sprintf("%s classified as %s", event.Filename, event.Label)
	case runner.FileFailed:
		if event.Error != "" {
			return fmt.Sprintf("%s failed: %s", event.Filename, event.Error)
		}
		return fmt.Sprintf("%s failed", event.Filename)
	}
	return ""
}
