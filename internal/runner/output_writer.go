package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"visval/internal/metrics"
)

// WriteRunOutputs writes the CSV exports and results.json for a run.
// The HTML report is rendered separately by the report package.
func WriteRunOutputs(results Results, outputDir, prefix string) (OutputPaths, error) {
	if outputDir == "" {
		return OutputPaths{}, fmt.Errorf("output directory is required")
	}
	paths, err := NewOutputPaths(outputDir, prefix, results.RunID)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
		return OutputPaths{}, fmt.Errorf("create output dir: %w", err)
	}

	truth, predicted := results.Pairs()
	matrix, err := metrics.Build(truth, predicted)
	if err != nil {
		return OutputPaths{}, err
	}
	if err := metrics.WriteCSVFiles(matrix, paths.ClassCSVPath(), paths.SummaryCSVPath()); err != nil {
		return OutputPaths{}, err
	}
	if err := writeJSON(paths.ResultsPath(), results); err != nil {
		return OutputPaths{}, err
	}
	return paths, nil
}

// writeJSON writes a Results payload as pretty JSON.
func writeJSON(path string, results Results) error {
	payload, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadResults reads a stored results.json.
func LoadResults(path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Results{}, fmt.Errorf("read results: %w", err)
	}
	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		return Results{}, fmt.Errorf("parse results: %w", err)
	}
	return results, nil
}
