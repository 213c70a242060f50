// Package ui holds the presentation primitives shared by the dashboard:
// value formatting, severity bands, themes and fixed-width tables.
//
// # Formatting
//
//	FormatBytes(1536)          // "1.5 KB"
//	FormatPercent(91.2, theme) // "91.2%" styled critical
//	FormatCount(12480)         // "12,480"
//
// Percentages fall into three bands: above 90 is critical, above 70 is
// warning, everything else nominal. The thresholds are fixed.
//
// # Themes
//
// Renderers style text through the Theme interface and never write escape
// codes directly. ColorTheme uses the bright ANSI palette in colors.go;
// PlainTheme leaves text untouched. NewTheme picks one from the terminal's
// color profile.
//
// # Tables
//
// Table pads cells by visible width, so cells that carry ANSI styling line
// up with plain ones.
package ui
