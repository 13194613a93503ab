package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"visval/internal/metrics"
	"visval/internal/runner"
)

// renderHTML renders the report page into a string.
func renderHTML(results runner.Results, matrix *metrics.Matrix) (string, error) {
	var builder strings.Builder
	if err := Page(results, matrix).Render(context.Background(), &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

// Page builds the report component for a run.
func Page(results runner.Results, matrix *metrics.Matrix) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeHeader(w, results); err != nil {
			return err
		}
		if err := writeSummary(w, results.Summary); err != nil {
			return err
		}
		if err := writeCategories(w, results.Categories); err != nil {
			return err
		}
		if err := writeMatrix(w, matrix); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body></html>\n")
		return err
	})
}

func writeHeader(w io.Writer, results runner.Results) error {
	_, err := fmt.Fprintf(w,
		"<!doctype html>\n<html><head><meta charset=\"utf-8\"><title>Validation Report</title></head><body>"+
			"<h1>Validation Report</h1>"+
			"<p>Run %s against %s</p>",
		templ.EscapeString(results.RunID),
		templ.EscapeString(results.Endpoint),
	)
	return err
}

func writeSummary(w io.Writer, summary runner.RunSummary) error {
	_, err := fmt.Fprintf(w,
		"<h2>Summary</h2><table border=\"1\">"+
			"<tr><th>Classes</th><th>Images</th><th>Accuracy</th><th>Precision</th><th>Recall</th><th>F1</th><th>MCC</th></tr>"+
			"<tr><td>%d</td><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>"+
			"</table>",
		summary.Classes,
		summary.Images,
		formatRatio(summary.Accuracy),
		formatRatio(summary.Precision),
		formatRatio(summary.Recall),
		formatRatio(summary.F1),
		formatRatio(summary.MCC),
	)
	return err
}

func writeCategories(w io.Writer, categories []runner.CategoryResult) error {
	if _, err := io.WriteString(w,
		"<h2>Categories</h2><table border=\"1\">"+
			"<tr><th>Directory</th><th>Label</th><th>Files</th><th>Classified</th><th>Failed</th><th>Skipped</th></tr>"); err != nil {
		return err
	}
	for _, category := range categories {
		if _, err := fmt.Fprintf(w,
			"<tr><td>%s</td><td>%s</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>",
			templ.EscapeString(category.Directory),
			templ.EscapeString(category.Label),
			category.Files,
			category.Classified,
			category.Failed,
			category.Skipped,
		); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</table>")
	return err
}

func writeMatrix(w io.Writer, matrix *metrics.Matrix) error {
	labels := matrix.Labels()
	if _, err := io.WriteString(w, "<h2>Confusion Matrix</h2><table border=\"1\"><tr><th>actual \\ predicted</th>"); err != nil {
		return err
	}
	for _, label := range labels {
		if _, err := fmt.Fprintf(w, "<th>%s</th>", templ.EscapeString(label)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, "</tr>"); err != nil {
		return err
	}
	for _, actual := range labels {
		if _, err := fmt.Fprintf(w, "<tr><th>%s</th>", templ.EscapeString(actual)); err != nil {
			return err
		}
		for _, predicted := range labels {
			if _, err := fmt.Fprintf(w, "<td>%d</td>", matrix.Count(actual, predicted)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</tr>"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</table>")
	return err
}
