// Package render formats part listings for terminal output.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders rows of part data as an aligned text table.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable creates a table with the given header row.
func NewTable(headers []string) *Table {
	return &Table{
		Headers: headers,
		Rows:    make([][]string, 0),
	}
}

// AddRow appends one row. Rows shorter than the header are padded with
// empty cells.
func (t *Table) AddRow(row ...string) {
	for len(row) < len(t.Headers) {
		row = append(row, "")
	}
	t.Rows = append(t.Rows, row)
}

// Render returns the table as plain text: a header row, a dashed divider,
// and one line per row, with columns padded to the widest cell.
func (t *Table) Render() string {
	if len(t.Headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				if w := lipgloss.Width(cell); w > colWidths[i] {
					colWidths[i] = w
				}
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", colWidths[i]-lipgloss.Width(cell)))
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(t.Headers)
	divider := make([]string, len(t.Headers))
	for i, w := range colWidths {
		divider[i] = strings.Repeat("-", w)
	}
	writeRow(divider)
	for _, row := range t.Rows {
		writeRow(row)
	}

	return sb.String()
}
