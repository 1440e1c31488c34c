package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderTable renders a simple aligned table with a header separator line.
// Columns are padded to the widest visible cell, measured with lipgloss so
// ANSI escapes do not skew alignment.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	pad := func(cell string, col int) string {
		n := widths[col] - lipgloss.Width(cell)
		if n < 0 {
			n = 0
		}
		if col == cols-1 {
			return cell
		}
		return cell + strings.Repeat(" ", n+colGap)
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(pad(StyleHeader.Render(h), i))
	}
	b.WriteString("\n")
	for i, w := range widths {
		b.WriteString(pad(StyleDim.Render(strings.Repeat("─", w)), i))
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(pad(cell, i))
		}
		b.WriteString("\n")
	}

	return b.String()
}
