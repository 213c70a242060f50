// Package testing provides test doubles for the registry package.
package testing

import (
	"context"
	"sync"

	"github.com/rileyhilliard/streamdash/internal/probe"
	"github.com/rileyhilliard/streamdash/internal/registry"
)

// FakeRegistry returns canned workers without spawning a supervisor.
type FakeRegistry struct {
	mu      sync.Mutex
	workers []registry.WorkerInfo
	err     error
	calls   int
}

// NewFakeRegistry creates a registry that lists the given workers.
func NewFakeRegistry(workers ...registry.WorkerInfo) *FakeRegistry {
	return &FakeRegistry{workers: workers}
}

// SetWorkers replaces the listed workers and clears any failure.
func (f *FakeRegistry) SetWorkers(workers ...registry.WorkerInfo) *FakeRegistry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.workers = workers
	f.err = nil
	return f
}

// Fail makes every List call unavailable with err.
func (f *FakeRegistry) Fail(err error) *FakeRegistry {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
	return f
}

// List implements registry.Registry.
func (f *FakeRegistry) List(ctx context.Context) probe.Result[[]registry.WorkerInfo] {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.err != nil {
		return probe.Result[[]registry.WorkerInfo]{Value: []registry.WorkerInfo{}, Err: f.err}
	}
	out := make([]registry.WorkerInfo, len(f.workers))
	copy(out, f.workers)
	return probe.OK(out)
}

// Calls returns how many times List has run.
func (f *FakeRegistry) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Online returns a running channel worker, the common case in tests.
func Online(name string) registry.WorkerInfo {
	return registry.WorkerInfo{Name: name, Status: registry.StatusOnline}
}

// Stopped returns a stopped worker.
func Stopped(name string) registry.WorkerInfo {
	return registry.WorkerInfo{Name: name, Status: "stopped"}
}
