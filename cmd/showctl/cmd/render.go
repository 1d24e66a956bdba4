package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	levelColors = map[string]lipgloss.Color{
		"basic":        lipgloss.Color("42"),
		"intermediate": lipgloss.Color("214"),
		"advanced":     lipgloss.Color("203"),
	}
)

// table collects rows and prints them with aligned columns. Styling is only
// applied when color is set.
type table struct {
	headers []string
	rows    [][]string
	color   bool
	// colorize styles a cell by column index; nil leaves cells unstyled.
	colorize func(col int, value string) lipgloss.Style
}

func newTable(color bool, headers ...string) *table {
	return &table{headers: headers, color: color}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render(w io.Writer) {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	line := func(cells []string, style func(int, string) string) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			pad := strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
			parts[i] = style(i, cell) + pad
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	line(t.headers, func(_ int, s string) string {
		if t.color {
			return headerStyle.Render(s)
		}
		return s
	})
	for _, row := range t.rows {
		line(row, func(i int, s string) string {
			if !t.color || t.colorize == nil {
				return s
			}
			return t.colorize(i, s).Render(s)
		})
	}
}

func levelStyle(level string) lipgloss.Style {
	if c, ok := levelColors[level]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return lipgloss.NewStyle()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-2]) + ".."
}

func footer(w io.Writer, color bool, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if color {
		msg = mutedStyle.Render(msg)
	}
	fmt.Fprintf(w, "\n%s\n", msg)
}
