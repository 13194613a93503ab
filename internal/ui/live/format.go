package live

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"visval/internal/runner"
)

// formatIndex formats a file index for display.
func formatIndex(index int) string {
	return pad2(index + 1)
}

// pad2 left-pads a number to two digits when needed.
func pad2(value int) string {
	if value >= 10 {
		return fmtInt(value)
	}
	return "0" + fmtInt(value)
}

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatFilename truncates a filename for display.
func formatFilename(name string) string {
	normalized := strings.TrimSpace(name)
	if normalized == "" {
		return ""
	}
	const limit = 48
	if len(normalized) <= limit {
		return normalized
	}
	return normalized[:limit-3] + "..."
}

// formatStatus renders a status string for a row.
func formatStatus(row FileRow, noColor bool) string {
	text := statusLabel(row.Status)
	if row.Status == runner.FileFailed && row.Error != "" {
		text = text + " (" + row.Error + ")"
	}
	return stylizeStatus(text, row.Status, noColor)
}

// statusLabel maps status codes to display labels.
func statusLabel(status runner.FileEventType) string {
	switch status {
	case runner.FileQueued:
		return "queued"
	case runner.FileUploading:
		return "uploading"
	case runner.FileClassified:
		return "classified"
	case runner.FileFailed:
		return "failed"
	default:
		return string(status)
	}
}

// formatLabel renders the predicted label cell for a row.
func formatLabel(row FileRow) string {
	if row.Label == "" {
		return ""
	}
	return row.Label
}

// formatConfidence renders a confidence value for display.
func formatConfidence(confidence *float64) string {
	if confidence == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*confidence, 'f', 2, 64)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row FileRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return row.FinishedAt.Sub(row.StartedAt).Round(time.Millisecond).String()
	}
	if !row.StartedAt.IsZero() {
		return now.Sub(row.StartedAt).Round(100 * time.Millisecond).String()
	}
	return ""
}

// formatCategoryEnd formats a category completion message.
func formatCategoryEnd(directory string, classified, failed, skipped int) string {
	message := directory + " done: " + fmtInt(classified) + " classified, " + fmtInt(failed) + " failed"
	if skipped > 0 {
		message += ", " + fmtInt(skipped) + " skipped"
	}
	return message
}

// stylizeStatus applies status coloring when enabled.
func stylizeStatus(text string, status runner.FileEventType, noColor bool) string {
	if noColor {
		return text
	}
	return statusStyle(status).Render(text)
}

// statusStyle selects a style for a given status.
func statusStyle(status runner.FileEventType) lipgloss.Style {
	color := lipgloss.Color("244")
	switch status {
	case runner.FileClassified:
		color = lipgloss.Color("42")
	case runner.FileFailed:
		color = lipgloss.Color("196")
	case runner.FileUploading:
		color = lipgloss.Color("33")
	case runner.FileQueued:
		color = lipgloss.Color("246")
	}
	return lipgloss.NewStyle().Foreground(color)
}
