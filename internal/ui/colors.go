package ui

import "github.com/charmbracelet/lipgloss"

// Color palette using bright ANSI codes, the 16-color set every terminal
// the dashboard runs on (ssh sessions, tmux, serial consoles) supports.
//
//	RED     '\033[91m' -> ANSI 9
//	GREEN   '\033[92m' -> ANSI 10
//	YELLOW  '\033[93m' -> ANSI 11
//	BLUE    '\033[94m' -> ANSI 12
//	CYAN    '\033[96m' -> ANSI 14
//	GRAY    '\033[90m' -> ANSI 8

// Severity colors
const (
	ColorCritical lipgloss.Color = "9"  // Bright red
	ColorWarning  lipgloss.Color = "11" // Bright yellow
	ColorNominal  lipgloss.Color = "10" // Bright green
)

// Chrome colors
const (
	ColorAccent  lipgloss.Color = "14" // Bright cyan, header box
	ColorHeading lipgloss.Color = "12" // Bright blue, section titles
	ColorMuted   lipgloss.Color = "8"  // Gray (bright black)
)
