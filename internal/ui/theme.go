package ui

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme styles text by meaning rather than by color. Renderers ask for a
// band or a role and never emit escape codes themselves, so a plain theme
// or a recording test double can stand in.
type Theme interface {
	Critical(s string) string
	Warning(s string) string
	Nominal(s string) string
	Accent(s string) string
	Heading(s string) string
	Muted(s string) string
}

// ColorTheme renders through lipgloss with a fixed color profile.
type ColorTheme struct {
	critical lipgloss.Style
	warning  lipgloss.Style
	nominal  lipgloss.Style
	accent   lipgloss.Style
	heading  lipgloss.Style
	muted    lipgloss.Style
}

// NewColorTheme builds a theme for the given profile. The profile is set
// explicitly instead of sniffed from stdout, which keeps output identical
// whether the frame goes to a TTY, a bubbletea viewport or a test buffer.
func NewColorTheme(profile termenv.Profile) *ColorTheme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)

	return &ColorTheme{
		critical: r.NewStyle().Foreground(ColorCritical),
		warning:  r.NewStyle().Foreground(ColorWarning),
		nominal:  r.NewStyle().Foreground(ColorNominal),
		accent:   r.NewStyle().Foreground(ColorAccent).Bold(true),
		heading:  r.NewStyle().Foreground(ColorHeading).Bold(true),
		muted:    r.NewStyle().Foreground(ColorMuted),
	}
}

func (t *ColorTheme) Critical(s string) string { return t.critical.Render(s) }
func (t *ColorTheme) Warning(s string) string  { return t.warning.Render(s) }
func (t *ColorTheme) Nominal(s string) string  { return t.nominal.Render(s) }
func (t *ColorTheme) Accent(s string) string   { return t.accent.Render(s) }
func (t *ColorTheme) Heading(s string) string  { return t.heading.Render(s) }
func (t *ColorTheme) Muted(s string) string    { return t.muted.Render(s) }

// PlainTheme returns text unchanged, for dumb terminals and redirected output.
type PlainTheme struct{}

func (PlainTheme) Critical(s string) string { return s }
func (PlainTheme) Warning(s string) string  { return s }
func (PlainTheme) Nominal(s string) string  { return s }
func (PlainTheme) Accent(s string) string   { return s }
func (PlainTheme) Heading(s string) string  { return s }
func (PlainTheme) Muted(s string) string    { return s }

// NewTheme picks a theme for a terminal's color profile. Ascii terminals
// (TERM=dumb, NO_COLOR, pipes) get PlainTheme.
func NewTheme(profile termenv.Profile) Theme {
	if profile == termenv.Ascii {
		return PlainTheme{}
	}
	return NewColorTheme(profile)
}
