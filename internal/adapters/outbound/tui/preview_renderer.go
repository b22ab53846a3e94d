package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/csvcheck/csvcheck/internal/domain"
)

const maxCellWidth = 24

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(fg).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Foreground(dim).Padding(0, 1)
	hintStyle        = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderPreview renders the head of an uploaded CSV as a table.
func RenderPreview(pv *domain.Preview) string {
	var b strings.Builder

	b.WriteString("\n  " + titleStyle.Render("File Preview:") + "\n")
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf("Total rows: %d", pv.TotalRows)) + "\n\n")

	if len(pv.Columns) > 0 {
		rows := make([][]string, 0, len(pv.Rows))
		for _, r := range pv.Rows {
			rows = append(rows, truncateCells(r))
		}

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(faintStyle).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return tableHeaderStyle
				}
				return tableCellStyle
			}).
			Headers(truncateCells(pv.Columns)...).
			Rows(rows...)

		b.WriteString(indent(t.String(), "  "))
		b.WriteString("\n")
	}

	for _, w := range pv.Warnings {
		b.WriteString("  " + warnStyle.Render("warn ") + " " + dimStyle.Render(w) + "\n")
	}

	return b.String()
}

// RenderPreviewError reports a preview failure; validation still proceeds.
func RenderPreviewError(err error) string {
	return "  " + errorTagStyle.Render("Error previewing file:") + " " + err.Error() + "\n" +
		"  " + hintStyle.Render("Note: Your file may contain inconsistent formatting. The validation process will still continue.") + "\n"
}

func truncateCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if r := []rune(c); len(r) > maxCellWidth {
			c = string(r[:maxCellWidth-1]) + "…"
		}
		out[i] = c
	}
	return out
}

func indent(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}
