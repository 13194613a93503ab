package report

import "fmt"

// formatRatio renders a metric ratio for report output.
func formatRatio(value float64) string {
	return fmt.Sprintf("%.4f", value)
}
