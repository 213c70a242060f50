// Package testing provides a theme that records styling as readable tags.
package testing

import "fmt"

// TagTheme wraps text in <role>...</role> markers so tests can assert which
// style a renderer picked without matching escape sequences.
type TagTheme struct{}

func tag(role, s string) string { return fmt.Sprintf("<%s>%s</%s>", role, s, role) }

func (TagTheme) Critical(s string) string { return tag("critical", s) }
func (TagTheme) Warning(s string) string  { return tag("warning", s) }
func (TagTheme) Nominal(s string) string  { return tag("nominal", s) }
func (TagTheme) Accent(s string) string   { return tag("accent", s) }
func (TagTheme) Heading(s string) string  { return tag("heading", s) }
func (TagTheme) Muted(s string) string    { return tag("muted", s) }
