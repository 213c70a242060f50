package dashboard

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/streamdash/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(src Source) Model {
	return NewModel(context.Background(), src, ui.PlainTheme{}, Cadence{Interval: 2 * time.Second})
}

func keyMsg(s string) tea.KeyMsg {
	if s == KeyQuitAlt {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step feeds msg to the model and returns the updated Model.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestNewModel(t *testing.T) {
	src := &fakeSource{}
	m := newTestModel(src)

	assert.True(t, m.collecting)
	assert.False(t, m.quitting)
	assert.False(t, m.hasSnapshot)
	assert.Equal(t, "Collecting metrics...\n", m.View())
}

func TestModel_InitCollects(t *testing.T) {
	src := &fakeSource{snap: sampleSnapshot()}
	m := newTestModel(src)

	cmd := m.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	cycle, ok := msg.(cycleMsg)
	require.True(t, ok)
	assert.Equal(t, fixedNow, cycle.Time)
	assert.Equal(t, 1, src.Calls())
}

func TestModel_CycleRendersAndSchedulesTick(t *testing.T) {
	m := newTestModel(&fakeSource{})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 60})

	snap := sampleSnapshot()
	snap.Elapsed = 1200 * time.Millisecond
	m, cmd := step(t, m, cycleMsg(snap))

	assert.False(t, m.collecting)
	assert.NotNil(t, cmd, "next tick must be scheduled")
	require.True(t, m.hasSnapshot)
	assert.Equal(t, snap.Time, m.snapshot.Time)

	view := m.View()
	assert.Contains(t, view, Title)
	assert.Contains(t, view, "ACTIVE STREAMS (2)")
	assert.Contains(t, view, HelpText)
}

func TestModel_TickStartsCycle(t *testing.T) {
	src := &fakeSource{snap: sampleSnapshot()}
	m := newTestModel(src)
	m, _ = step(t, m, cycleMsg(sampleSnapshot()))

	m, cmd := step(t, m, tickMsg{seq: m.seq})

	assert.True(t, m.collecting)
	require.NotNil(t, cmd)
	_, ok := cmd().(cycleMsg)
	assert.True(t, ok)
}

func TestModel_StaleTickIgnored(t *testing.T) {
	m := newTestModel(&fakeSource{})
	m, _ = step(t, m, cycleMsg(sampleSnapshot()))

	m, cmd := step(t, m, tickMsg{seq: m.seq - 1})

	assert.Nil(t, cmd)
	assert.False(t, m.collecting)
}

func TestModel_TickWhileCollectingIgnored(t *testing.T) {
	m := newTestModel(&fakeSource{})
	require.True(t, m.collecting)

	_, cmd := step(t, m, tickMsg{seq: m.seq})
	assert.Nil(t, cmd)
}

func TestModel_Refresh(t *testing.T) {
	m := newTestModel(&fakeSource{snap: sampleSnapshot()})

	// First cycle still running: refresh does nothing.
	m, cmd := step(t, m, keyMsg(KeyRefresh))
	assert.Nil(t, cmd)

	m, _ = step(t, m, cycleMsg(sampleSnapshot()))
	seq := m.seq

	m, cmd = step(t, m, keyMsg(KeyRefresh))
	assert.True(t, m.collecting)
	require.NotNil(t, cmd)

	// The refreshed cycle supersedes the tick scheduled before it.
	m, _ = step(t, m, cycleMsg(sampleSnapshot()))
	m, cmd = step(t, m, tickMsg{seq: seq})
	assert.Nil(t, cmd)
	assert.False(t, m.collecting)
}

func TestModel_Quit(t *testing.T) {
	for _, key := range []string{KeyQuit, KeyQuitAlt} {
		t.Run(key, func(t *testing.T) {
			m := newTestModel(&fakeSource{})

			m, cmd := step(t, m, keyMsg(key))

			assert.True(t, m.quitting)
			require.NotNil(t, cmd)
			assert.Equal(t, tea.Quit(), cmd())
			assert.Empty(t, m.View())
		})
	}
}

func TestModel_ScrollKeysReachViewport(t *testing.T) {
	m := newTestModel(&fakeSource{})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 6})
	m, _ = step(t, m, cycleMsg(sampleSnapshot()))
	require.Equal(t, 0, m.viewport.YOffset)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.viewport.YOffset)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.viewport.YOffset)
}

func TestModel_Resize(t *testing.T) {
	m := newTestModel(&fakeSource{})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	assert.Equal(t, 80, m.viewport.Width)
	assert.Equal(t, 20-footerHeight, m.viewport.Height)
}
