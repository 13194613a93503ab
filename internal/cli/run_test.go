package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"visval/internal/runner"
	"visval/internal/spec"
)

// TestRunCommandParsesFlags verifies CLI flag parsing for run.
func TestRunCommandParsesFlags(t *testing.T) {
	dir := t.TempDir()
	configPath := writeValidConfig(t, dir)

	var gotParams runner.RunParams
	origRun := runAndWrite
	runAndWrite = func(_ context.Context, _ spec.Config, params runner.RunParams) (runner.Results, runner.OutputPaths, error) {
		gotParams = params
		paths := runner.OutputPaths{Dir: filepath.Join(dir, "results"), Prefix: "validation", RunID: "run-1"}
		if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
			t.Fatalf("create run dir: %v", err)
		}
		return runner.Results{RunID: "run-1"}, paths, nil
	}
	t.Cleanup(func() { runAndWrite = origRun })

	cmd := findCommand("run")
	if cmd == nil {
		t.Fatalf("run command not found")
	}
	var stdout, stderr bytes.Buffer
	exitCode := cmd.Run([]string{"--config", configPath, "--verbose", "--no-color", "--output-dir", "./other", "cat"}, &stdout, &stderr)
	if exitCode != ExitOK {
		t.Fatalf("unexpected exit: %d, stderr: %s", exitCode, stderr.String())
	}
	if gotParams.BaseDir != dir {
		t.Fatalf("unexpected base dir: %s", gotParams.BaseDir)
	}
	if gotParams.OutputDir != "./other" {
		t.Fatalf("unexpected output dir override: %s", gotParams.OutputDir)
	}
	if len(gotParams.Dirs) != 1 || gotParams.Dirs[0] != "cat" {
		t.Fatalf("unexpected directory selectors: %+v", gotParams.Dirs)
	}
	if gotParams.Observer == nil {
		t.Fatalf("expected verbose observer to be set")
	}
	if !strings.Contains(stdout.String(), "Run run-1 completed") {
		t.Fatalf("expected completion message, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "validation_class.csv") {
		t.Fatalf("expected class CSV path, got %q", stdout.String())
	}
	reportPath := filepath.Join(dir, "results", "runs", "run-1", "report.html")
	if _, err := os.Stat(reportPath); err != nil {
		t.Fatalf("expected report to be written: %v", err)
	}
}

// TestRunCommandPlainModeSkipsObserver verifies plain mode runs without a UI.
func TestRunCommandPlainModeSkipsObserver(t *testing.T) {
	dir := t.TempDir()
	configPath := writeValidConfig(t, dir)

	var gotParams runner.RunParams
	origRun := runAndWrite
	runAndWrite = func(_ context.Context, _ spec.Config, params runner.RunParams) (runner.Results, runner.OutputPaths, error) {
		gotParams = params
		paths := runner.OutputPaths{Dir: filepath.Join(dir, "results"), Prefix: "validation", RunID: "run-2"}
		if err := os.MkdirAll(paths.RunDir(), 0o755); err != nil {
			t.Fatalf("create run dir: %v", err)
		}
		return runner.Results{RunID: "run-2"}, paths, nil
	}
	t.Cleanup(func() { runAndWrite = origRun })

	cmd := findCommand("run")
	var stdout, stderr bytes.Buffer
	exitCode := cmd.Run([]string{"--config", configPath, "--ui", "plain"}, &stdout, &stderr)
	if exitCode != ExitOK {
		t.Fatalf("unexpected exit: %d, stderr: %s", exitCode, stderr.String())
	}
	if gotParams.Observer != nil {
		t.Fatalf("expected no observer in plain mode")
	}
}

// TestRunCommandInvalidUIMode verifies bad --ui values are rejected.
func TestRunCommandInvalidUIMode(t *testing.T) {
	configPath := writeValidConfig(t, t.TempDir())

	cmd := findCommand("run")
	var stdout, stderr bytes.Buffer
	exitCode := cmd.Run([]string{"--config", configPath, "--ui", "fancy"}, &stdout, &stderr)
	if exitCode != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, exitCode)
	}
	if !strings.Contains(stderr.String(), "invalid ui mode") {
		t.Fatalf("expected ui mode error, got %q", stderr.String())
	}
}

// TestRunCommandLoadFailure verifies missing configs fail cleanly.
func TestRunCommandLoadFailure(t *testing.T) {
	cmd := findCommand("run")
	var stdout, stderr bytes.Buffer
	exitCode := cmd.Run([]string{"--config", filepath.Join(t.TempDir(), "missing.yml")}, &stdout, &stderr)
	if exitCode != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, exitCode)
	}
	if !strings.Contains(stderr.String(), "Failed to load config") {
		t.Fatalf("expected load failure, got %q", stderr.String())
	}
}
