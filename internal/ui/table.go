package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// KeyValue is one row of a two-column summary table.
type KeyValue struct {
	Key   string
	Value string
}

// SummaryView renders rows as a Metric/Value table.
func SummaryView(rows []KeyValue) string {
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		data = append(data, []string{r.Key, r.Value})
	}
	return TableView([]string{"Metric", "Value"}, data)
}

// TableView renders a bordered table with alternating row shades.
func TableView(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return MutedStyle.Render("Nothing to show")
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(Primary)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case row%2 == 0:
				return TableRowStyle
			default:
				return TableRowAltStyle
			}
		})

	return tbl.Render()
}

// RenderSummary outputs a summary table directly.
func RenderSummary(title string, rows []KeyValue) {
	fmt.Fprintln(Output, TitleStyle.Render(title))
	fmt.Fprintln(Output, SummaryView(rows))
}
