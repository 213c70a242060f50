package registry

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rileyhilliard/streamdash/internal/errors"
	"github.com/rileyhilliard/streamdash/internal/exec"
	"github.com/rileyhilliard/streamdash/internal/logger"
	"github.com/rileyhilliard/streamdash/internal/probe"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultTimeout bounds a supervisor query when none is configured.
const DefaultTimeout = 5 * time.Second

// PM2 queries pm2 through its `jlist` command.
type PM2 struct {
	command string
	args    []string
	timeout time.Duration
	runner  exec.Runner
	log     logger.Logger
}

// PM2Option customizes a PM2 registry.
type PM2Option func(*PM2)

// WithRunner replaces the command runner.
func WithRunner(r exec.Runner) PM2Option {
	return func(p *PM2) { p.runner = r }
}

// WithLogger sets the logger used for failed queries.
func WithLogger(l logger.Logger) PM2Option {
	return func(p *PM2) { p.log = l }
}

// NewPM2 creates a registry that runs command with args and expects a JSON
// array on stdout. A non-positive timeout uses DefaultTimeout.
func NewPM2(command string, args []string, timeout time.Duration, opts ...PM2Option) *PM2 {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	p := &PM2{
		command: command,
		args:    args,
		timeout: timeout,
		runner:  exec.Local{},
		log:     logger.Noop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// List runs one query. There is no retry: the next refresh cycle asks again.
func (p *PM2) List(ctx context.Context) probe.Result[[]WorkerInfo] {
	queryCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := p.runner.Capture(queryCtx, p.command, p.args...)
	if err != nil {
		return p.fail(ctx, errors.WrapWithCode(err, errors.ErrRegistry,
			"Worker registry unreachable",
			"Check that "+p.command+" is installed and its daemon is running"))
	}
	if out.ExitCode != 0 {
		return p.fail(ctx, errors.WrapWithCode(
			fmt.Errorf("exit status %d: %s", out.ExitCode, strings.TrimSpace(string(out.Stderr))),
			errors.ErrRegistry,
			"Worker registry query failed",
			"Run '"+p.commandLine()+"' by hand to see what's wrong"))
	}

	workers, err := ParseJList(out.Stdout)
	if err != nil {
		return p.fail(ctx, err)
	}

	p.log.Debug("%s listed %d workers in %s", p.command, len(workers), out.Duration)
	return probe.OK(workers)
}

// fail reports a degraded query. A canceled caller is shutting down, so the
// failure is only logged at debug level.
func (p *PM2) fail(ctx context.Context, err error) probe.Result[[]WorkerInfo] {
	if ctx.Err() != nil {
		p.log.Debug("worker registry: %s", errors.Reason(err))
	} else {
		p.log.Warn("worker registry: %s", errors.Reason(err))
	}
	return probe.Result[[]WorkerInfo]{Value: []WorkerInfo{}, Err: err}
}

func (p *PM2) commandLine() string {
	return strings.TrimSpace(p.command + " " + strings.Join(p.args, " "))
}

// pm2Process mirrors the subset of a pm2 jlist entry the dashboard reads.
// Pointers distinguish absent fields from zero values.
type pm2Process struct {
	Name   *string `json:"name"`
	PM2Env *struct {
		Status      *string  `json:"status"`
		RestartTime *float64 `json:"restart_time"`
	} `json:"pm2_env"`
	Monit *struct {
		CPU    *float64 `json:"cpu"`
		Memory *float64 `json:"memory"`
	} `json:"monit"`
}

// ParseJList decodes pm2's jlist output. pm2 sometimes prints banners
// ("[PM2] Spawning PM2 daemon", update notices) ahead of the array, so
// decoding is attempted from each '[' in turn until one yields an array.
func ParseJList(data []byte) ([]WorkerInfo, error) {
	var lastErr error
	for off := 0; off < len(data); {
		i := bytes.IndexByte(data[off:], '[')
		if i < 0 {
			break
		}
		start := off + i
		off = start + 1

		var procs []pm2Process
		if err := json.Unmarshal(data[start:], &procs); err != nil {
			lastErr = err
			continue
		}

		workers := make([]WorkerInfo, 0, len(procs))
		for _, proc := range procs {
			workers = append(workers, proc.toWorker())
		}
		return workers, nil
	}

	if lastErr != nil {
		return nil, errors.WrapWithCode(lastErr, errors.ErrRegistry,
			"Worker registry returned malformed JSON", "")
	}
	return nil, errors.New(errors.ErrRegistry,
		"Worker registry returned no process list",
		"Expected a JSON array on stdout")
}

func (p pm2Process) toWorker() WorkerInfo {
	w := WorkerInfo{
		Name:   UnknownName,
		Status: StatusUnknown,
	}
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.PM2Env != nil {
		if p.PM2Env.Status != nil {
			w.Status = *p.PM2Env.Status
		}
		w.Restarts = toUint(p.PM2Env.RestartTime)
	}
	if p.Monit != nil {
		if p.Monit.CPU != nil && *p.Monit.CPU > 0 {
			w.CPU = *p.Monit.CPU
		}
		w.Memory = toUint(p.Monit.Memory)
	}
	return w
}

// toUint converts a JSON number to uint64, mapping absent, negative and
// non-finite values to 0.
func toUint(v *float64) uint64 {
	if v == nil || *v <= 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	if *v >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(*v)
}
