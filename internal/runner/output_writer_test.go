package runner

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
)

func sampleResults() Results {
	confidence := 0.9
	return Results{
		RunID:     "20240102T030405Z-deadbeef",
		Endpoint:  "http://localhost:8080/classify",
		InputRoot: "/testset",
		StartedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Categories: []CategoryResult{
			{Directory: "cat", Label: "cat", Files: 2, Classified: 2},
		},
		Files: []FileResult{
			{Category: "cat", Truth: "cat", Filename: "cat_01.jpg", Label: "cat", Confidence: &confidence, DurationMS: 12.5, Status: StatusClassified},
			{Category: "cat", Truth: "cat", Filename: "cat_02.jpg", Label: "dog", Confidence: &confidence, DurationMS: 14.0, Status: StatusClassified},
		},
	}
}

func TestWriteRunOutputs(t *testing.T) {
	outputDir := t.TempDir()
	results := sampleResults()

	paths, err := WriteRunOutputs(results, outputDir, "validation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paths.ClassCSVPath() != filepath.Join(outputDir, "validation_class.csv") {
		t.Fatalf("unexpected class csv path: %q", paths.ClassCSVPath())
	}
	for _, path := range []string{paths.ClassCSVPath(), paths.SummaryCSVPath(), paths.ResultsPath()} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to exist: %v", path, err)
		}
	}

	loaded, err := LoadResults(paths.ResultsPath())
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if loaded.RunID != results.RunID {
		t.Fatalf("unexpected run id: %q", loaded.RunID)
	}
	if len(loaded.Files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(loaded.Files))
	}
}

// TestSummaryImagesMatchesProcessedCount checks that the summary CSV's
// image count equals the number of processed files.
func TestSummaryImagesMatchesProcessedCount(t *testing.T) {
	outputDir := t.TempDir()
	paths, err := WriteRunOutputs(sampleResults(), outputDir, "validation")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	file, err := os.Open(paths.SummaryCSVPath())
	if err != nil {
		t.Fatalf("open summary: %v", err)
	}
	defer file.Close()
	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("parse summary: %v", err)
	}
	images, err := strconv.Atoi(rows[1][1])
	if err != nil {
		t.Fatalf("parse image count: %v", err)
	}
	if images != 2 {
		t.Fatalf("expected 2 images, got %d", images)
	}
}

func TestWriteRunOutputsRequiresDir(t *testing.T) {
	_, err := WriteRunOutputs(sampleResults(), "", "validation")
	if err == nil {
		t.Fatalf("expected error for missing output dir")
	}
}

func TestNewOutputPathsValidation(t *testing.T) {
	if _, err := NewOutputPaths("out", "validation", ""); err == nil {
		t.Fatalf("expected error for empty run id")
	}
	if _, err := NewOutputPaths("out", "", "run-1"); err == nil {
		t.Fatalf("expected error for empty prefix")
	}
	paths, err := NewOutputPaths("out", "validation", "run-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if paths.RunDir() != filepath.Join("out", "runs", "run-1") {
		t.Fatalf("unexpected run dir: %q", paths.RunDir())
	}
}
