package dashboard

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/streamdash/internal/channel"
	"github.com/rileyhilliard/streamdash/internal/probe"
	"github.com/rileyhilliard/streamdash/internal/sampler"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fakeSampler returns a canned host snapshot.
type fakeSampler struct {
	snap  sampler.HostSnapshot
	calls int
}

func (f *fakeSampler) Sample(ctx context.Context) sampler.HostSnapshot {
	f.calls++
	return f.snap
}

func healthyHost() sampler.HostSnapshot {
	return sampler.HostSnapshot{
		CPU:     probe.OK(sampler.CPUUsage{Overall: 42.5, PerCore: []float64{10, 75}}),
		Memory:  probe.OK(sampler.NewUsage(1<<30, 4<<30, 25)),
		Disk:    probe.OK(sampler.NewUsage(95<<30, 100<<30, 95)),
		Network: probe.OK(sampler.NetCounters{BytesRecv: 1536, BytesSent: 1024}),
	}
}

// fakeChannels records the ids it was asked for.
type fakeChannels struct {
	mu        sync.Mutex
	ids       []string
	deadlines []bool
}

func (f *fakeChannels) Collect(ctx context.Context, id string) channel.Stats {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, id)
	_, ok := ctx.Deadline()
	f.deadlines = append(f.deadlines, ok)
	return channel.Stats{ChannelID: id, LastUpdate: probe.OK(time.Second), Healthy: true}
}

// fakeSource returns the same snapshot on every call.
type fakeSource struct {
	mu        sync.Mutex
	snap      Snapshot
	calls     int
	onCollect func(call int)
}

func (f *fakeSource) Collect(ctx context.Context) Snapshot {
	f.mu.Lock()
	f.calls++
	call, hook := f.calls, f.onCollect
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	return f.snap
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// syncBuffer is a bytes.Buffer safe to read while the loop writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// section returns the lines following heading up to the next blank line.
func section(frame, heading string) []string {
	var out []string
	found := false
	for _, line := range strings.Split(frame, "\n") {
		if !found {
			found = strings.Contains(line, heading)
			continue
		}
		if line == "" {
			break
		}
		out = append(out, line)
	}
	return out
}
