package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"visval/internal/classifier"
	"visval/internal/metrics"
	"visval/internal/spec"
)

// Classifier is the subset of the client the runner drives.
type Classifier interface {
	Classify(ctx context.Context, dir, name string) (classifier.Result, error)
}

type ClientFactory func(opts classifier.Options) Classifier

type RunDependencies struct {
	NewClient ClientFactory
	RunID     func() (string, error)
	Now       func() time.Time
}

type RunParams struct {
	BaseDir   string
	OutputDir string
	Dirs      []string
	Observer  RunObserver
	Deps      RunDependencies
}

// Run walks the input root's category directories, classifies every
// eligible file against the endpoint, and aggregates the aligned
// truth/predicted pairs into results. Processing is strictly
// sequential: one directory, one file, one blocking call at a time.
func Run(ctx context.Context, cfg spec.Config, params RunParams) (Results, error) {
	inputRoot := resolvePath(params.BaseDir, cfg.Input.Root)
	directories, err := categoryDirectories(inputRoot, params.Dirs)
	if err != nil {
		return Results{}, err
	}

	runID, err := ensureRunID(params.Deps.RunID)
	if err != nil {
		return Results{}, err
	}
	now := params.Deps.Now
	if now == nil {
		now = time.Now
	}
	newClient := params.Deps.NewClient
	if newClient == nil {
		newClient = func(opts classifier.Options) Classifier {
			return classifier.NewClient(opts)
		}
	}
	client := newClient(classifier.Options{
		Endpoint:          cfg.Endpoint.URL,
		VerifyTLS:         cfg.Endpoint.TLSVerify(),
		Timeout:           time.Duration(cfg.Endpoint.TimeoutSeconds) * time.Second,
		NormalizeNegative: cfg.Labels.NormalizeNegative,
		NegativeLabel:     cfg.Labels.Negative,
		UnclassifiedLabel: cfg.Labels.Unclassified,
	})

	observer := params.Observer
	startedAt := now()
	if observer != nil {
		observer.OnRunStart(runID, inputRoot)
	}

	results := Results{
		RunID:     runID,
		Endpoint:  cfg.Endpoint.URL,
		InputRoot: inputRoot,
		StartedAt: startedAt,
	}

	for _, directory := range directories {
		label := truthLabel(cfg.Categories, directory)
		dirPath := filepath.Join(inputRoot, directory)
		names, skipped, err := classifier.ListImages(dirPath)
		if err != nil {
			return Results{}, err
		}
		if observer != nil {
			observer.OnCategoryStart(directory, label, len(names))
			for index, name := range names {
				observer.OnFileEvent(FileEvent{
					Directory: directory,
					FileIndex: index,
					Filename:  name,
					Type:      FileQueued,
					EmittedAt: now(),
				})
			}
		}

		category := CategoryResult{
			Directory: directory,
			Label:     label,
			Files:     len(names),
			Skipped:   skipped,
		}
		for index, name := range names {
			if err := ctx.Err(); err != nil {
				return Results{}, fmt.Errorf("run cancelled: %w", err)
			}
			if observer != nil {
				observer.OnFileEvent(FileEvent{
					Directory: directory,
					FileIndex: index,
					Filename:  name,
					Type:      FileUploading,
					EmittedAt: now(),
				})
			}
			result, classifyErr := client.Classify(ctx, dirPath, name)
			file := FileResult{
				Category:   directory,
				Truth:      label,
				Filename:   result.Filename,
				Label:      result.Label,
				Confidence: result.Confidence,
				DurationMS: result.DurationMS(),
				Status:     StatusClassified,
			}
			event := FileEvent{
				Directory:  directory,
				FileIndex:  index,
				Filename:   name,
				Type:       FileClassified,
				Label:      result.Label,
				Confidence: result.Confidence,
				Duration:   result.Duration,
				EmittedAt:  now(),
			}
			if classifyErr != nil {
				file.Status = StatusFailed
				event.Type = FileFailed
				event.Error = classifyErr.Error()
				category.Failed++
			} else {
				category.Classified++
			}
			results.Files = append(results.Files, file)
			if observer != nil {
				observer.OnFileEvent(event)
			}
		}

		results.Categories = append(results.Categories, category)
		if observer != nil {
			observer.OnCategoryEnd(directory, category.Classified, category.Failed, category.Skipped)
		}
	}

	results.FinishedAt = now()
	summary, err := summarize(results)
	if err != nil {
		return Results{}, err
	}
	results.Summary = summary
	if observer != nil {
		observer.OnRunEnd(results)
	}
	return results, nil
}

// RunAndWrite executes a run and writes its outputs.
func RunAndWrite(ctx context.Context, cfg spec.Config, params RunParams) (Results, OutputPaths, error) {
	results, err := Run(ctx, cfg, params)
	if err != nil {
		return Results{}, OutputPaths{}, err
	}
	outputDir := params.OutputDir
	if strings.TrimSpace(outputDir) == "" {
		outputDir = cfg.Output.Dir
	}
	outputDir = resolvePath(params.BaseDir, outputDir)
	paths, err := WriteRunOutputs(results, outputDir, cfg.Output.Prefix)
	if err != nil {
		return results, OutputPaths{}, err
	}
	return results, paths, nil
}

// categoryDirectories lists the immediate subdirectories of the input
// root, optionally filtered by selectors. Non-directories are ignored.
func categoryDirectories(inputRoot string, selectors []string) ([]string, error) {
	entries, err := os.ReadDir(inputRoot)
	if err != nil {
		return nil, fmt.Errorf("read input root %s: %w", inputRoot, err)
	}
	available := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			available = append(available, entry.Name())
		}
	}
	sort.Strings(available)
	if len(available) == 0 {
		return nil, fmt.Errorf("input root %s has no category directories", inputRoot)
	}
	if len(selectors) == 0 {
		return available, nil
	}

	known := make(map[string]struct{}, len(available))
	for _, name := range available {
		known[name] = struct{}{}
	}
	selected := make([]string, 0, len(selectors))
	seen := map[string]struct{}{}
	for _, selector := range selectors {
		if _, ok := known[selector]; !ok {
			return nil, fmt.Errorf("unknown category directory %q", selector)
		}
		if _, dup := seen[selector]; dup {
			continue
		}
		seen[selector] = struct{}{}
		selected = append(selected, selector)
	}
	sort.Strings(selected)
	return selected, nil
}

// truthLabel resolves a directory's ground-truth label through the
// category map, falling back to the directory name.
func truthLabel(categories map[string]string, directory string) string {
	if label, ok := categories[directory]; ok && strings.TrimSpace(label) != "" {
		return label
	}
	return directory
}

// summarize computes the run summary from the aligned pairs.
func summarize(results Results) (RunSummary, error) {
	truth, predicted := results.Pairs()
	matrix, err := metrics.Build(truth, predicted)
	if err != nil {
		return RunSummary{}, err
	}
	overall := metrics.Summarize(matrix)
	return RunSummary{
		Classes:   overall.Classes,
		Images:    overall.Images,
		TP:        overall.TP,
		TN:        overall.TN,
		FP:        overall.FP,
		FN:        overall.FN,
		Precision: overall.Precision,
		Recall:    overall.Recall,
		Accuracy:  overall.Accuracy,
		F1:        overall.F1,
		MCC:       overall.MCC,
	}, nil
}

// resolvePath resolves relative paths against the config base directory.
func resolvePath(baseDir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// ensureRunID uses the provided generator or falls back to NewRunID.
func ensureRunID(generator func() (string, error)) (string, error) {
	if generator != nil {
		return generator()
	}
	return NewRunID()
}
