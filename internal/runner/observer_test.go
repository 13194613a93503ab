package runner

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"visval/internal/classifier"
)

// recordingObserver captures every observer callback for assertions.
type recordingObserver struct {
	runStarts  []string
	categories []string
	events     []FileEvent
	ends       []string
	runEnded   bool
}

func (o *recordingObserver) OnRunStart(runID string, inputRoot string) {
	o.runStarts = append(o.runStarts, runID)
}

func (o *recordingObserver) OnCategoryStart(directory string, label string, files int) {
	o.categories = append(o.categories, directory)
}

func (o *recordingObserver) OnFileEvent(event FileEvent) {
	o.events = append(o.events, event)
}

func (o *recordingObserver) OnCategoryEnd(directory string, classified, failed, skipped int) {
	o.ends = append(o.ends, directory)
}

func (o *recordingObserver) OnRunEnd(results Results) {
	o.runEnded = true
}

// stubClassifier returns canned results without any network access.
type stubClassifier struct {
	labels map[string]string
}

func (s *stubClassifier) Classify(ctx context.Context, dir, name string) (classifier.Result, error) {
	if label, ok := s.labels[name]; ok {
		confidence := 0.9
		return classifier.Result{Filename: name, Label: label, Confidence: &confidence, Duration: time.Millisecond}, nil
	}
	return classifier.Placeholder(name, time.Millisecond), context.DeadlineExceeded
}

func TestRunEmitsObserverLifecycle(t *testing.T) {
	root := writeTestSet(t, map[string][]string{
		"cat": {"cat_01.jpg", "fail_02.jpg"},
	})
	cfg := testConfig("http://localhost:0", root)
	observer := &recordingObserver{}

	_, err := Run(context.Background(), cfg, RunParams{
		Observer: observer,
		Deps: RunDependencies{
			NewClient: func(opts classifier.Options) Classifier {
				return &stubClassifier{labels: map[string]string{"cat_01.jpg": "cat"}}
			},
			RunID: func() (string, error) { return "run-1", nil },
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(observer.runStarts) != 1 || observer.runStarts[0] != "run-1" {
		t.Fatalf("expected one run start, got %v", observer.runStarts)
	}
	if len(observer.categories) != 1 || observer.categories[0] != "cat" {
		t.Fatalf("expected cat category start, got %v", observer.categories)
	}
	if !observer.runEnded {
		t.Fatalf("expected run end")
	}

	var queued, uploading, classified, failed int
	for _, event := range observer.events {
		switch event.Type {
		case FileQueued:
			queued++
		case FileUploading:
			uploading++
		case FileClassified:
			classified++
		case FileFailed:
			failed++
		}
	}
	if queued != 2 || uploading != 2 {
		t.Fatalf("expected 2 queued and 2 uploading, got %d/%d", queued, uploading)
	}
	if classified != 1 || failed != 1 {
		t.Fatalf("expected 1 classified and 1 failed, got %d/%d", classified, failed)
	}
}

func TestVerboseObserverOutput(t *testing.T) {
	var buf bytes.Buffer
	observer := NewVerboseObserver(&buf, true)

	observer.OnRunStart("run-1", "/testset")
	observer.OnCategoryStart("cat", "cat", 1)
	confidence := 0.9
	observer.OnFileEvent(FileEvent{
		Directory:  "cat",
		Filename:   "cat_01.jpg",
		Type:       FileClassified,
		Label:      "cat",
		Confidence: &confidence,
		Duration:   25 * time.Millisecond,
	})
	observer.OnFileEvent(FileEvent{
		Directory: "cat",
		Filename:  "broken.jpg",
		Type:      FileFailed,
		Error:     "endpoint rejected broken.jpg (status 500)",
	})
	observer.OnCategoryEnd("cat", 1, 1, 0)
	observer.OnRunEnd(Results{RunID: "run-1", Summary: RunSummary{Images: 2, Classes: 1}})

	output := buf.String()
	for _, want := range []string{
		"run run-1 started",
		"category cat label=cat files=1",
		"cat/cat_01.jpg -> cat confidence=0.900",
		"cat/broken.jpg failed",
		"category cat done classified=1 failed=1 skipped=0",
		"run run-1 done images=2",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, output)
		}
	}
	if strings.Contains(output, "\x1b[") {
		t.Fatalf("expected no ANSI codes with noColor, got:\n%s", output)
	}
}

func TestVerboseObserverSilentOnQueued(t *testing.T) {
	var buf bytes.Buffer
	observer := NewVerboseObserver(&buf, true)
	observer.OnFileEvent(FileEvent{Type: FileQueued, Filename: "a.jpg"})
	observer.OnFileEvent(FileEvent{Type: FileUploading, Filename: "a.jpg"})
	if buf.Len() != 0 {
		t.Fatalf("expected no output for queued/uploading, got %q", buf.String())
	}
}
