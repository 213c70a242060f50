package sampler

import (
	"math"

	"github.com/rileyhilliard/streamdash/internal/probe"
)

// HostSnapshot is one reading of the local host's resources.
// Each metric is read independently, so one broken counter never hides the others.
type HostSnapshot struct {
	CPU     probe.Result[CPUUsage]
	Memory  probe.Result[Usage]
	Disk    probe.Result[Usage]
	Network probe.Result[NetCounters]
}

// CPUUsage holds utilization measured over one sampling window.
type CPUUsage struct {
	Overall float64
	PerCore []float64
}

// Usage is a used/total pair with its percentage.
type Usage struct {
	Used    uint64
	Total   uint64
	Percent float64
}

// NetCounters are cumulative byte counters since boot, summed over all
// interfaces. No rate is derived from them.
type NetCounters struct {
	BytesRecv uint64
	BytesSent uint64
}

// NewUsage builds a Usage that respects used <= total and 0 <= percent <= 100.
// A negative percent means "compute from used/total".
func NewUsage(used, total uint64, percent float64) Usage {
	if used > total {
		used = total
	}
	if percent < 0 {
		percent = 0
		if total > 0 {
			percent = float64(used) / float64(total) * 100
		}
	}
	return Usage{Used: used, Total: total, Percent: ClampPercent(percent)}
}

// ClampPercent pins p to [0, 100] and maps NaN to 0. Counters sampled at
// slightly different moments can round past 100.
func ClampPercent(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// CPUOverall returns aggregate CPU percent, 0 when unavailable.
func (s HostSnapshot) CPUOverall() float64 { return s.CPU.Value.Overall }

// CPUPerCore returns per-core CPU percent, nil when unavailable.
func (s HostSnapshot) CPUPerCore() []float64 { return s.CPU.Value.PerCore }

// MemUsed returns used memory in bytes, 0 when unavailable.
func (s HostSnapshot) MemUsed() uint64 { return s.Memory.Value.Used }

// MemTotal returns total memory in bytes, 0 when unavailable.
func (s HostSnapshot) MemTotal() uint64 { return s.Memory.Value.Total }

// MemPercent returns memory usage percent, 0 when unavailable.
func (s HostSnapshot) MemPercent() float64 { return s.Memory.Value.Percent }

// DiskUsed returns used disk bytes, 0 when unavailable.
func (s HostSnapshot) DiskUsed() uint64 { return s.Disk.Value.Used }

// DiskTotal returns total disk bytes, 0 when unavailable.
func (s HostSnapshot) DiskTotal() uint64 { return s.Disk.Value.Total }

// DiskPercent returns disk usage percent, 0 when unavailable.
func (s HostSnapshot) DiskPercent() float64 { return s.Disk.Value.Percent }

// NetRxTotal returns cumulative received bytes, 0 when unavailable.
func (s HostSnapshot) NetRxTotal() uint64 { return s.Network.Value.BytesRecv }

// NetTxTotal returns cumulative sent bytes, 0 when unavailable.
func (s HostSnapshot) NetTxTotal() uint64 { return s.Network.Value.BytesSent }
