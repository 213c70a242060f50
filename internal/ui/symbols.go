package ui

// Box drawing for the dashboard header.
const (
	BoxTopLeft     = "╔"
	BoxTopRight    = "╗"
	BoxBottomLeft  = "╚"
	BoxBottomRight = "╝"
	BoxHorizontal  = "═"
	BoxVertical    = "║"
)

// RuleChar draws the separator under table headers.
const RuleChar = "-"

// Ellipsis marks a truncated cell.
const Ellipsis = "…"
