package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTable_Render(t *testing.T) {
	tb := NewTable("groups", "group", "type", "files")
	tb.Append("0", "speech", "12")
	tb.Append("1", "melody")
	tb.Footer = "2 groups"

	out := tb.Render()
	lines := strings.Split(out, "\n")
	if lines[0] != tb.Styles.Title.Render("groups") {
		t.Errorf("title line = %q", lines[0])
	}
	for _, want := range []string{"speech", "melody", "12", "2 groups"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
	// All box lines share one width.
	w := lipgloss.Width(lines[1])
	for _, l := range lines[1 : len(lines)-1] {
		if lipgloss.Width(l) != w {
			t.Errorf("line %q has width %d, want %d", l, lipgloss.Width(l), w)
		}
	}
}

func TestTable_Truncates(t *testing.T) {
	tb := NewTable("", "name")
	tb.MaxWidth = 5
	tb.Append("abcdefghij")
	out := tb.Render()
	if !strings.Contains(out, "abcd…") || strings.Contains(out, "abcde") {
		t.Errorf("output = %q", out)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"你好世界", 4, "你好"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.width); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
