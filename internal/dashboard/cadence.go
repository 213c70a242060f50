package dashboard

import (
	"sync"
	"time"
)

// MinDelay is the shortest pause between cycles, even when a cycle overran
// the interval. It keeps an overloaded host from being polled back-to-back.
const MinDelay = 100 * time.Millisecond

// DefaultInterval is the target time between cycle starts.
const DefaultInterval = 2 * time.Second

// Cadence spaces cycles at a fixed interval measured start to start.
type Cadence struct {
	Interval time.Duration
}

// Next returns how long to wait after a cycle that took elapsed.
func (c Cadence) Next(elapsed time.Duration) time.Duration {
	interval := c.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	d := interval - elapsed
	if d < MinDelay {
		return MinDelay
	}
	return d
}

// TickSource emits the start of each cycle.
type TickSource interface {
	Ticks() <-chan time.Time
	Stop()
}

// Ticker is a TickSource backed by time.Ticker. A ticker measures from
// cycle start to cycle start, and drops ticks while a slow cycle is still
// running, which gives the same spacing as Cadence.
type Ticker struct {
	t *time.Ticker
}

// NewTicker starts a ticker. A non-positive interval uses DefaultInterval.
func NewTicker(interval time.Duration) *Ticker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Ticker{t: time.NewTicker(interval)}
}

func (t *Ticker) Ticks() <-chan time.Time { return t.t.C }
func (t *Ticker) Stop()                   { t.t.Stop() }

// ManualTicks is a TickSource driven by the caller, for tests.
type ManualTicks struct {
	c chan time.Time

	mu      sync.Mutex
	stopped bool
}

// NewManualTicks creates a source that only ticks when Tick is called.
func NewManualTicks() *ManualTicks {
	return &ManualTicks{c: make(chan time.Time)}
}

// Tick delivers one tick, blocking until the loop receives it.
func (m *ManualTicks) Tick(t time.Time) {
	m.c <- t
}

func (m *ManualTicks) Ticks() <-chan time.Time { return m.c }

func (m *ManualTicks) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

// Stopped reports whether the loop released the source.
func (m *ManualTicks) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}
