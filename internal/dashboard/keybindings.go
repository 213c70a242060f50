package dashboard

import tea "github.com/charmbracelet/bubbletea"

// Key bindings as constants for consistency.
const (
	KeyQuit    = "q"
	KeyQuitAlt = "ctrl+c"
	KeyRefresh = "r"
)

// HelpText lists the keys the TUI handles, shown under the viewport.
const HelpText = "q quit • r refresh • ↑/↓ pgup/pgdn scroll"

// HandleKeyMsg processes keyboard input. It returns false for keys the
// model doesn't own, which are then passed to the viewport for scrolling.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case KeyQuit, KeyQuitAlt:
		m.quitting = true
		return true, tea.Quit

	case KeyRefresh:
		if m.collecting {
			return true, nil
		}
		m.collecting = true
		return true, m.collectCmd()
	}
	return false, nil
}
