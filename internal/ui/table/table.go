package table

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NoCursor renders without a highlighted row.
const NoCursor = -1

// Render draws an ASCII table from columns + rows. The row at index cursor
// is marked with ">" in the left border.
func Render(columns []string, rows [][]string, cursor int) string {
	if len(columns) == 0 {
		return "(No columns)\n"
	}

	// Display width of each column
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = lipgloss.Width(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				continue
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	border := func() string {
		var b strings.Builder
		b.WriteString("+")
		for _, w := range widths {
			b.WriteString(strings.Repeat("-", w+2))
			b.WriteString("+")
		}
		b.WriteString("\n")
		return b.String()
	}

	line := func(sb *strings.Builder, lead string, cells []string) {
		sb.WriteString(lead)
		for i := range columns {
			var cell string
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(" ")
			sb.WriteString(pad(cell, widths[i]))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	var sb strings.Builder

	sb.WriteString(border())
	line(&sb, "|", columns)
	sb.WriteString(border())

	for i, row := range rows {
		lead := "|"
		if i == cursor {
			lead = ">"
		}
		line(&sb, lead, row)
	}

	sb.WriteString(border())

	return sb.String()
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

// ApplyHorizontalScroll clips every line to width runes starting at offset.
func ApplyHorizontalScroll(s string, offset, width int) string {
	if width <= 0 {
		return s
	}
	if offset < 0 {
		offset = 0
	}

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		runes := []rune(line)

		if offset >= len(runes) {
			out = append(out, "")
			continue
		}

		end := min(offset+width, len(runes))
		out = append(out, string(runes[offset:end]))
	}

	return strings.Join(out, "\n")
}
