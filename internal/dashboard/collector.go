package dashboard

import (
	"context"
	"time"

	"github.com/rileyhilliard/streamdash/internal/channel"
	"github.com/rileyhilliard/streamdash/internal/logger"
	"github.com/rileyhilliard/streamdash/internal/registry"
	"github.com/rileyhilliard/streamdash/internal/sampler"
)

// DefaultChannelTimeout bounds the filesystem work for one channel.
const DefaultChannelTimeout = 2 * time.Second

// Source produces snapshots. Collector is the production implementation.
type Source interface {
	Collect(ctx context.Context) Snapshot
}

// ChannelCollector gathers stats for one channel id.
type ChannelCollector interface {
	Collect(ctx context.Context, id string) channel.Stats
}

// Collector runs one dashboard cycle across all collectors.
type Collector struct {
	sampler        sampler.Sampler
	registry       registry.Registry
	channels       ChannelCollector
	channelTimeout time.Duration
	now            func() time.Time
	log            logger.Logger
}

// Option customizes a Collector.
type Option func(*Collector)

// WithChannelTimeout sets the per-channel collection bound.
func WithChannelTimeout(d time.Duration) Option {
	return func(c *Collector) {
		if d > 0 {
			c.channelTimeout = d
		}
	}
}

// WithClock replaces time.Now for snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) { c.now = now }
}

// WithLogger sets the cycle logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Collector) { c.log = l }
}

// NewCollector wires the three collectors into a cycle.
func NewCollector(s sampler.Sampler, r registry.Registry, ch ChannelCollector, opts ...Option) *Collector {
	c := &Collector{
		sampler:        s,
		registry:       r,
		channels:       ch,
		channelTimeout: DefaultChannelTimeout,
		now:            time.Now,
		log:            logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect runs the collectors in order: host, workers, then one channel per
// channel-<id> worker. Collectors run sequentially; the cycle's latency is
// dominated by the CPU sampling window anyway.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	start := c.now()

	snap := Snapshot{Time: start}
	snap.Host = c.sampler.Sample(ctx)
	snap.Workers = c.registry.List(ctx)
	snap.Channels = c.collectChannels(ctx, snap.Workers.Value)
	snap.Elapsed = c.now().Sub(start)

	c.log.Debug("cycle: %d workers, %d channels in %s", len(snap.Workers.Value), len(snap.Channels), snap.Elapsed)
	return snap
}

func (c *Collector) collectChannels(ctx context.Context, workers []registry.WorkerInfo) []channel.Stats {
	stats := make([]channel.Stats, 0, len(workers))
	for _, w := range workers {
		if !w.IsChannel() {
			continue
		}
		cctx, cancel := context.WithTimeout(ctx, c.channelTimeout)
		stats = append(stats, c.channels.Collect(cctx, w.ChannelID()))
		cancel()
	}
	return stats
}
