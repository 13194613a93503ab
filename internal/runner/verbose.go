package runner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const verbosePrefix = "[verbose]"

const (
	ansiReset = "\x1b[0m"
	ansiBold  = "\x1b[1m"
	ansiDim   = "\x1b[2m"
	ansiGray  = "\x1b[90m"
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiBlue  = "\x1b[34m"
)

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	styleCategory
	styleMetrics
	styleError
)

// VerboseObserver logs run progress as plain text lines.
type VerboseObserver struct {
	writer  io.Writer
	noColor bool
}

// NewVerboseObserver constructs a plain-text run observer.
func NewVerboseObserver(writer io.Writer, noColor bool) *VerboseObserver {
	return &VerboseObserver{writer: writer, noColor: noColor}
}

// OnRunStart logs the run header.
func (o *VerboseObserver) OnRunStart(runID string, inputRoot string) {
	o.logf(styleDefault, "run %s started root=%s", runID, inputRoot)
}

// OnCategoryStart logs the category header.
func (o *VerboseObserver) OnCategoryStart(directory string, label string, files int) {
	o.logf(styleCategory, "category %s label=%s files=%d", directory, label, files)
}

// OnFileEvent logs classification outcomes; queued and uploading
// transitions stay silent to keep the log readable.
func (o *VerboseObserver) OnFileEvent(event FileEvent) {
	switch event.Type {
	case FileClassified:
		o.logf(styleDefault, "%s/%s -> %s confidence=%s time=%s",
			event.Directory, event.Filename, event.Label,
			formatConfidence(event.Confidence), event.Duration.Round(1e6))
	case FileFailed:
		o.logf(styleError, "%s/%s failed: %s", event.Directory, event.Filename, event.Error)
	}
}

// OnCategoryEnd logs the category totals.
func (o *VerboseObserver) OnCategoryEnd(directory string, classified, failed, skipped int) {
	o.logf(styleCategory, "category %s done classified=%d failed=%d skipped=%d",
		directory, classified, failed, skipped)
}

// OnRunEnd logs the run summary.
func (o *VerboseObserver) OnRunEnd(results Results) {
	summary := results.Summary
	o.logf(styleMetrics, "run %s done images=%d classes=%d accuracy=%.4f f1=%.4f mcc=%.4f",
		results.RunID, summary.Images, summary.Classes,
		summary.Accuracy, summary.F1, summary.MCC)
}

// logf writes a styled verbose line.
func (o *VerboseObserver) logf(style verboseStyle, format string, args ...any) {
	if o == nil || o.writer == nil {
		return
	}
	palette := paletteFor(o.writer, o.noColor)
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(o.writer, "%s %s\n", palette.prefix(verbosePrefix), palette.apply(style, line))
}

// formatConfidence renders an optional confidence value.
func formatConfidence(confidence *float64) string {
	if confidence == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", *confidence)
}

type verbosePalette struct {
	enabled bool
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor {
		return verbosePalette{enabled: false}
	}
	return verbosePalette{enabled: shouldUseStyling(writer)}
}

func shouldUseStyling(writer io.Writer) bool {
	if writer == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := writer.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

func (p verbosePalette) prefix(text string) string {
	if !p.enabled {
		return text
	}
	return ansiDim + ansiGray + text + ansiReset
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if !p.enabled {
		return text
	}
	switch style {
	case styleCategory:
		return ansiBold + ansiBlue + text + ansiReset
	case styleMetrics:
		return ansiBold + ansiGreen + text + ansiReset
	case styleError:
		return ansiBold + ansiRed + text + ansiReset
	default:
		return text
	}
}
