package ui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Column defines a fixed-width table column.
type Column struct {
	Title string
	Width int

	// Truncate shortens over-long cells to Width instead of letting them
	// push the following columns right.
	Truncate bool
}

// Table lays out rows of pre-styled cells in fixed-width columns. Widths
// are measured with lipgloss.Width, so styled cells align with plain ones.
type Table struct {
	Columns []Column
	Indent  string
	// RuleWidth is the length of the separator under the header.
	RuleWidth int
}

// Header renders the column titles followed by a separator line.
func (t Table) Header(theme Theme) string {
	titles := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		titles[i] = c.Title
	}
	var b strings.Builder
	b.WriteString(t.Row(titles...))
	b.WriteString("\n")
	b.WriteString(t.Indent)
	b.WriteString(theme.Muted(strings.Repeat(RuleChar, t.RuleWidth)))
	return b.String()
}

// Row renders one line. Every cell but the last is padded to its column
// width; a single space separates columns. Missing cells render empty and
// extra cells are dropped.
func (t Table) Row(cells ...string) string {
	var b strings.Builder
	b.WriteString(t.Indent)
	for i, c := range t.Columns {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if c.Truncate {
			cell = Truncate(cell, c.Width)
		}
		if i == len(t.Columns)-1 {
			b.WriteString(cell)
			break
		}
		b.WriteString(PadRight(cell, c.Width))
		b.WriteString(" ")
	}
	return strings.TrimRight(b.String(), " ")
}

// PadRight pads s with spaces to width visible columns. ANSI sequences
// don't count towards the width. Strings already at or over width are
// returned unchanged.
func PadRight(s string, width int) string {
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}

// stripMarks removes combining characters, which some terminals draw with
// zero width and others don't, so the cell width stays predictable.
func stripMarks(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if clean, _, err := transform.String(t, s); err == nil {
		return clean
	}
	return s
}

// Truncate shortens plain text to at most width visible columns, ending in
// an ellipsis when anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = stripMarks(s)
	if lipgloss.Width(s) <= width {
		return s
	}

	var b strings.Builder
	used := 0
	limit := width - lipgloss.Width(Ellipsis)
	for _, r := range s {
		w := lipgloss.Width(string(r))
		if used+w > limit {
			break
		}
		b.WriteRune(r)
		used += w
	}
	b.WriteString(Ellipsis)
	return b.String()
}
