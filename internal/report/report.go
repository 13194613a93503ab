package report

import (
	"fmt"
	"os"

	"visval/internal/metrics"
	"visval/internal/runner"
)

// BuildHTML renders the HTML report for a run.
func BuildHTML(results runner.Results) (string, error) {
	truth, predicted := results.Pairs()
	matrix, err := metrics.Build(truth, predicted)
	if err != nil {
		return "", err
	}
	return renderHTML(results, matrix)
}

// Write renders the HTML report and writes it to a file.
func Write(path string, results runner.Results) error {
	html, err := BuildHTML(results)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
