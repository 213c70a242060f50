// Package sampler reads instantaneous resource usage of the local host.
package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/streamdash/internal/errors"
	"github.com/rileyhilliard/streamdash/internal/logger"
	"github.com/rileyhilliard/streamdash/internal/probe"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
)

// Sampler produces a HostSnapshot. Sample may block for the CPU window.
type Sampler interface {
	Sample(ctx context.Context) HostSnapshot
}

// Probes are the raw OS readers used by System. Tests replace them.
type Probes struct {
	CPUPercent func(ctx context.Context, window time.Duration, percpu bool) ([]float64, error)
	Memory     func(ctx context.Context) (*mem.VirtualMemoryStat, error)
	Disk       func(ctx context.Context, path string) (*disk.UsageStat, error)
	Network    func(ctx context.Context, pernic bool) ([]net.IOCountersStat, error)
}

// GopsutilProbes returns probes backed by gopsutil.
func GopsutilProbes() Probes {
	return Probes{
		CPUPercent: cpu.PercentWithContext,
		Memory:     mem.VirtualMemoryWithContext,
		Disk:       disk.UsageWithContext,
		Network:    net.IOCountersWithContext,
	}
}

// System samples the local host.
type System struct {
	diskPath string
	window   time.Duration
	probes   Probes
	log      logger.Logger
}

// Option customizes a System sampler.
type Option func(*System)

// WithProbes replaces the OS readers.
func WithProbes(p Probes) Option {
	return func(s *System) { s.probes = p }
}

// WithLogger sets the logger used for per-metric failures.
func WithLogger(l logger.Logger) Option {
	return func(s *System) { s.log = l }
}

// NewSystem creates a sampler that reports disk usage for diskPath and
// measures CPU over window.
func NewSystem(diskPath string, window time.Duration, opts ...Option) *System {
	s := &System{
		diskPath: diskPath,
		window:   window,
		probes:   GopsutilProbes(),
		log:      logger.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sample reads every metric. CPU is measured once per core over the window
// and the aggregate is their mean, so the window is paid only once.
func (s *System) Sample(ctx context.Context) HostSnapshot {
	return HostSnapshot{
		CPU:     s.sampleCPU(ctx),
		Memory:  s.sampleMemory(ctx),
		Disk:    s.sampleDisk(ctx),
		Network: s.sampleNetwork(ctx),
	}
}

func (s *System) sampleCPU(ctx context.Context) probe.Result[CPUUsage] {
	perCore, err := s.probes.CPUPercent(ctx, s.window, true)
	if err == nil && len(perCore) == 0 {
		err = fmt.Errorf("no per-core counters reported")
	}
	if err != nil {
		return unavailableAs[CPUUsage](s, "CPU", errors.Wrap(err, "CPU usage unavailable"))
	}

	var sum float64
	cores := make([]float64, len(perCore))
	for i, p := range perCore {
		cores[i] = ClampPercent(p)
		sum += cores[i]
	}
	return probe.OK(CPUUsage{
		Overall: ClampPercent(sum / float64(len(cores))),
		PerCore: cores,
	})
}

func (s *System) sampleMemory(ctx context.Context) probe.Result[Usage] {
	vm, err := s.probes.Memory(ctx)
	if err == nil && vm == nil {
		err = fmt.Errorf("no memory stats reported")
	}
	if err != nil {
		return unavailableAs[Usage](s, "memory", errors.Wrap(err, "Memory usage unavailable"))
	}
	return probe.OK(NewUsage(vm.Used, vm.Total, vm.UsedPercent))
}

func (s *System) sampleDisk(ctx context.Context) probe.Result[Usage] {
	du, err := s.probes.Disk(ctx, s.diskPath)
	if err == nil && du == nil {
		err = fmt.Errorf("no disk stats reported")
	}
	if err != nil {
		return unavailableAs[Usage](s, "disk", errors.WrapWithCode(err, errors.ErrHost,
			"Disk usage unavailable for "+s.diskPath,
			"Check disk_path points at an existing mount"))
	}
	return probe.OK(NewUsage(du.Used, du.Total, du.UsedPercent))
}

func (s *System) sampleNetwork(ctx context.Context) probe.Result[NetCounters] {
	counters, err := s.probes.Network(ctx, false)
	if err == nil && len(counters) == 0 {
		err = fmt.Errorf("no interfaces reported")
	}
	if err != nil {
		return unavailableAs[NetCounters](s, "network", errors.Wrap(err, "Network counters unavailable"))
	}

	// pernic=false yields a single "all" entry; summing keeps this correct
	// for probes that return per-interface rows anyway.
	var nc NetCounters
	for _, c := range counters {
		nc.BytesRecv += c.BytesRecv
		nc.BytesSent += c.BytesSent
	}
	return probe.OK(nc)
}

func unavailableAs[T any](s *System, metric string, err error) probe.Result[T] {
	s.log.Debug("%s sample failed: %s", metric, errors.Reason(err))
	return probe.Unavailable[T](err)
}
