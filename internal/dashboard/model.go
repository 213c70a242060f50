package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/streamdash/internal/ui"
)

// footerHeight reserves the line under the viewport for the key help.
const footerHeight = 1

// Model is the Bubble Tea model for the dashboard. It keeps only the latest
// snapshot, which it re-renders on resize.
type Model struct {
	ctx     context.Context
	source  Source
	theme   ui.Theme
	cadence Cadence

	snapshot    Snapshot
	hasSnapshot bool
	collecting  bool
	quitting    bool

	// seq identifies the pending tick. A manual refresh schedules a new tick,
	// and the older one is ignored when it fires.
	seq int

	viewport      viewport.Model
	viewportReady bool
	width         int
	height        int
}

// tickMsg signals that the next cycle is due.
type tickMsg struct {
	seq int
}

// cycleMsg carries a finished collection.
type cycleMsg Snapshot

// NewModel creates a dashboard model. Collections run with ctx, so canceling
// it aborts an in-flight cycle.
func NewModel(ctx context.Context, src Source, theme ui.Theme, cadence Cadence) Model {
	return Model{
		ctx:        ctx,
		source:     src,
		theme:      theme,
		cadence:    cadence,
		collecting: true, // Init starts the first cycle
	}
}

// Init collects the first snapshot right away.
func (m Model) Init() tea.Cmd {
	return m.collectCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportHeight := m.height - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		if !m.viewportReady {
			m.viewport = viewport.New(m.width, viewportHeight)
			m.viewportReady = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = viewportHeight
		}
		m.refreshContent()
		return m, nil

	case tickMsg:
		if msg.seq != m.seq || m.collecting {
			return m, nil
		}
		m.collecting = true
		return m, m.collectCmd()

	case cycleMsg:
		m.snapshot = Snapshot(msg)
		m.hasSnapshot = true
		m.collecting = false
		m.refreshContent()

		m.seq++
		return m, m.tickCmd(m.cadence.Next(msg.Elapsed))
	}

	if m.viewportReady {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.viewportReady || !m.hasSnapshot {
		return "Collecting metrics...\n"
	}
	return m.viewport.View() + "\n" + m.theme.Muted(HelpText)
}

func (m *Model) refreshContent() {
	if !m.viewportReady || !m.hasSnapshot {
		return
	}
	m.viewport.SetContent(Render(m.snapshot, m.theme).String())
}

// tickCmd schedules the next cycle for the current seq.
func (m Model) tickCmd(d time.Duration) tea.Cmd {
	seq := m.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return tickMsg{seq: seq}
	})
}

// collectCmd runs one cycle off the UI goroutine.
func (m Model) collectCmd() tea.Cmd {
	ctx, src := m.ctx, m.source
	return func() tea.Msg {
		return cycleMsg(src.Collect(ctx))
	}
}
