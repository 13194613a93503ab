package metrics

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

// classHeader lists the per-class CSV columns.
var classHeader = []string{
	"Class", "TP", "TN", "FP", "FN", "Support", "Population",
	"Precision", "Recall", "Specificity", "FPR", "FNR", "NPV", "F1", "Accuracy",
}

// summaryHeader lists the summary CSV columns. TP/TN/FP/FN are summed
// across classes; "# of Images" is the shared per-class population.
var summaryHeader = []string{
	"# of Classes", "# of Images", "TP", "TN", "FP", "FN",
	"Precision", "Recall", "Accuracy", "F1", "MCC",
}

// WriteClassCSV writes one row per class with all per-class metrics.
func WriteClassCSV(w io.Writer, stats []ClassStats) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(classHeader); err != nil {
		return fmt.Errorf("write class header: %w", err)
	}
	for _, class := range stats {
		row := []string{
			class.Label,
			strconv.Itoa(class.TP),
			strconv.Itoa(class.TN),
			strconv.Itoa(class.FP),
			strconv.Itoa(class.FN),
			strconv.Itoa(class.Support),
			strconv.Itoa(class.Population),
			formatFloat(class.Precision),
			formatFloat(class.Recall),
			formatFloat(class.Specificity),
			formatFloat(class.FPR),
			formatFloat(class.FNR),
			formatFloat(class.NPV),
			formatFloat(class.F1),
			formatFloat(class.Accuracy),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write class row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteSummaryCSV writes the single-row overall summary.
func WriteSummaryCSV(w io.Writer, overall Overall) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(summaryHeader); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	row := []string{
		strconv.Itoa(overall.Classes),
		strconv.Itoa(overall.Images),
		strconv.Itoa(overall.TP),
		strconv.Itoa(overall.TN),
		strconv.Itoa(overall.FP),
		strconv.Itoa(overall.FN),
		formatFloat(overall.Precision),
		formatFloat(overall.Recall),
		formatFloat(overall.Accuracy),
		formatFloat(overall.F1),
		formatFloat(overall.MCC),
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("write summary row: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

// WriteCSVFiles writes the class and summary CSVs next to each other
// using the configured path prefix.
func WriteCSVFiles(m *Matrix, classPath, summaryPath string) error {
	classFile, err := os.Create(classPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", classPath, err)
	}
	defer classFile.Close()
	if err := WriteClassCSV(classFile, PerClass(m)); err != nil {
		return err
	}

	summaryFile, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", summaryPath, err)
	}
	defer summaryFile.Close()
	return WriteSummaryCSV(summaryFile, Summarize(m))
}

// formatFloat renders metric ratios with stable precision.
func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', 5, 64)
}
