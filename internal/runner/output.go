package runner

import (
	"fmt"
	"path/filepath"
	"strings"
)

// OutputPaths describes filesystem locations for run outputs. The CSV
// files live directly under the output dir; per-run artifacts live
// under runs/<run-id>.
type OutputPaths struct {
	Dir    string
	Prefix string
	RunID  string
}

// NewOutputPaths validates and constructs output paths metadata.
func NewOutputPaths(dir, prefix, runID string) (OutputPaths, error) {
	if strings.TrimSpace(dir) == "" {
		return OutputPaths{}, fmt.Errorf("output dir is empty")
	}
	if strings.TrimSpace(prefix) == "" {
		return OutputPaths{}, fmt.Errorf("output prefix is empty")
	}
	if strings.TrimSpace(runID) == "" {
		return OutputPaths{}, fmt.Errorf("run ID is empty")
	}
	return OutputPaths{
		Dir:    dir,
		Prefix: prefix,
		RunID:  runID,
	}, nil
}

// ClassCSVPath returns the path to the per-class metrics CSV.
func (o OutputPaths) ClassCSVPath() string {
	return filepath.Join(o.Dir, o.Prefix+"_class.csv")
}

// SummaryCSVPath returns the path to the summary CSV.
func (o OutputPaths) SummaryCSVPath() string {
	return filepath.Join(o.Dir, o.Prefix+"_summary.csv")
}

// RunDir returns the directory for a specific run's artifacts.
func (o OutputPaths) RunDir() string {
	return filepath.Join(o.Dir, "runs", o.RunID)
}

// ResultsPath returns the path to results.json.
func (o OutputPaths) ResultsPath() string {
	return filepath.Join(o.RunDir(), "results.json")
}

// ReportPath returns the path to the HTML report.
func (o OutputPaths) ReportPath() string {
	return filepath.Join(o.RunDir(), "report.html")
}
