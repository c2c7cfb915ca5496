package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme of terminal output.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/help text color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Border lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Header: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Border: lipgloss.NewStyle().Foreground(t.Primary),
		Help:   lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// Table is a boxed text table.
type Table struct {
	Styles  Styles
	Title   string
	Headers []string
	Rows    [][]string
	Footer  string

	// MaxWidth truncates cells wider than this; 0 means no limit.
	MaxWidth int
}

// NewTable creates a table with the default styles.
func NewTable(title string, headers ...string) *Table {
	return &Table{Styles: NewStyles(DefaultTheme), Title: title, Headers: headers}
}

// Append adds a row. Missing cells are left blank.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render renders the table to a string.
func (t *Table) Render() string {
	cols := len(t.Headers)
	for _, r := range t.Rows {
		cols = max(cols, len(r))
	}
	widths := make([]int, cols)
	measure := func(cells []string) {
		for i, c := range cells {
			widths[i] = max(widths[i], lipgloss.Width(t.cell(c)))
		}
	}
	measure(t.Headers)
	for _, r := range t.Rows {
		measure(r)
	}

	bc := t.Styles.Border
	line := func(l, m, r string) string {
		parts := make([]string, cols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return bc.Render(l + strings.Join(parts, m) + r)
	}
	row := func(cells []string, style *lipgloss.Style) string {
		var b strings.Builder
		b.WriteString(bc.Render("│"))
		for i, w := range widths {
			text := ""
			if i < len(cells) {
				text = t.cell(cells[i])
			}
			pad := strings.Repeat(" ", w-lipgloss.Width(text))
			if style != nil {
				text = style.Render(text)
			}
			b.WriteString(" " + text + pad + " " + bc.Render("│"))
		}
		return b.String()
	}

	var lines []string
	if t.Title != "" {
		lines = append(lines, t.Styles.Title.Render(t.Title))
	}
	lines = append(lines, line("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		lines = append(lines, row(t.Headers, &t.Styles.Header))
		lines = append(lines, line("├", "┼", "┤"))
	}
	for _, r := range t.Rows {
		lines = append(lines, row(r, nil))
	}
	lines = append(lines, line("╰", "┴", "╯"))
	if t.Footer != "" {
		lines = append(lines, t.Styles.Help.Render(t.Footer))
	}
	return strings.Join(lines, "\n")
}

func (t *Table) cell(s string) string {
	if t.MaxWidth > 1 && lipgloss.Width(s) > t.MaxWidth {
		return truncateString(s, t.MaxWidth-1) + "…"
	}
	return s
}

// truncateString safely truncates a string to the given width,
// handling multi-byte characters correctly.
func truncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	currentWidth := 0
	for i, r := range runes {
		w := lipgloss.Width(string(r))
		if currentWidth+w > width {
			return string(runes[:i])
		}
		currentWidth += w
	}
	return s
}
