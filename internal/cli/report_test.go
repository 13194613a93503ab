package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"visval/internal/runner"
)

// writeStoredRun persists a minimal run under the config's output dir.
func writeStoredRun(t *testing.T, dir, runID string) runner.OutputPaths {
	t.Helper()
	confidence := 0.9
	results := runner.Results{
		RunID:     runID,
		Endpoint:  "http://localhost:8080/classify",
		InputRoot: filepath.Join(dir, "testset"),
		StartedAt: time.Now().Add(-time.Minute),
		Files: []runner.FileResult{
			{
				Category: "cat", Truth: "cat", Filename: "cat_01.jpg",
				Label: "cat", Confidence: &confidence, DurationMS: 10,
				Status: runner.StatusClassified,
			},
		},
	}
	results.FinishedAt = time.Now()
	paths, err := runner.WriteRunOutputs(results, filepath.Join(dir, "results"), "validation")
	if err != nil {
		t.Fatalf("write run outputs: %v", err)
	}
	return paths
}

// TestReportRendersLatestRun verifies report picks the newest run.
func TestReportRendersLatestRun(t *testing.T) {
	dir := t.TempDir()
	configPath := writeValidConfig(t, dir)
	writeStoredRun(t, dir, "20240101T000000Z-aaaaaa")
	latest := writeStoredRun(t, dir, "20240102T000000Z-bbbbbb")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"report", "--config", configPath}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr.String())
	}
	if !strings.Contains(stdout.String(), latest.ReportPath()) {
		t.Fatalf("expected latest report path, got %q", stdout.String())
	}
	if _, err := os.Stat(latest.ReportPath()); err != nil {
		t.Fatalf("expected report file: %v", err)
	}
}

// TestReportRendersNamedRun verifies --run selects a specific run.
func TestReportRendersNamedRun(t *testing.T) {
	dir := t.TempDir()
	configPath := writeValidConfig(t, dir)
	first := writeStoredRun(t, dir, "20240101T000000Z-aaaaaa")
	writeStoredRun(t, dir, "20240102T000000Z-bbbbbb")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"report", "--config", configPath, "--run", first.RunID}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, stderr.String())
	}
	if !strings.Contains(stdout.String(), first.ReportPath()) {
		t.Fatalf("expected named report path, got %q", stdout.String())
	}
}

// TestReportWithoutRunsFails verifies missing runs are reported.
func TestReportWithoutRunsFails(t *testing.T) {
	dir := t.TempDir()
	configPath := writeValidConfig(t, dir)

	var stdout, stderr bytes.Buffer
	code := Run([]string{"report", "--config", configPath}, &stdout, &stderr)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(stderr.String(), "Failed to find run") {
		t.Fatalf("expected missing run error, got %q", stderr.String())
	}
}
