package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// defaultColumns returns the table column layout.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "File", Width: 48},
		{Title: "Status", Width: 28},
		{Title: "Label", Width: 18},
		{Title: "Conf", Width: 6},
		{Title: "Time", Width: 10},
	}
}

// columnsForWidth adjusts the file column to the terminal width.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	fixed := 0
	for i, column := range columns {
		if i != 1 {
			fixed += column.Width
		}
	}
	fileWidth := width - fixed - len(columns)*2
	if fileWidth < 16 {
		fileWidth = 16
	}
	columns[1].Width = fileWidth
	return columns
}

// rowsForState converts UI state into table rows.
func rowsForState(state State, now time.Time, noColor bool) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		rows = append(rows, table.Row{
			formatIndex(row.Index),
			formatFilename(row.Filename),
			formatStatus(row, noColor),
			formatLabel(row),
			formatConfidence(row.Confidence),
			formatRowDuration(row, now),
		})
	}
	return rows
}
