package dashboard

import (
	"time"

	"github.com/rileyhilliard/streamdash/internal/channel"
	"github.com/rileyhilliard/streamdash/internal/probe"
	"github.com/rileyhilliard/streamdash/internal/registry"
	"github.com/rileyhilliard/streamdash/internal/sampler"
)

// Snapshot holds everything one frame shows.
type Snapshot struct {
	// Time is when the cycle started; the header shows it.
	Time     time.Time
	Host     sampler.HostSnapshot
	Workers  probe.Result[[]registry.WorkerInfo]
	Channels []channel.Stats

	// Elapsed is how long collection took.
	Elapsed time.Duration
}

// Frame is the rendered text of one cycle.
type Frame string

func (f Frame) String() string { return string(f) }
