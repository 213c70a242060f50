package channel

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rileyhilliard/streamdash/internal/config"
	"github.com/rileyhilliard/streamdash/internal/errors"
	"github.com/rileyhilliard/streamdash/internal/logger"
	"github.com/rileyhilliard/streamdash/internal/probe"
	"github.com/spf13/afero"
)

// Collector reads channel directories under a single HLS root.
type Collector struct {
	fs     afero.Fs
	hlsDir string
	now    func() time.Time
	log    logger.Logger
}

// Option customizes a Collector.
type Option func(*Collector)

// WithClock replaces time.Now, used to compute playlist ages.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) { c.now = now }
}

// WithLogger sets the logger for degraded sub-steps.
func WithLogger(l logger.Logger) Option {
	return func(c *Collector) { c.log = l }
}

// NewCollector creates a collector for channels stored under hlsDir on fs.
// Production code passes afero.NewOsFs().
func NewCollector(fs afero.Fs, hlsDir string, opts ...Option) *Collector {
	c := &Collector{
		fs:     fs,
		hlsDir: hlsDir,
		now:    time.Now,
		log:    logger.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Dir returns the output directory of a channel.
func (c *Collector) Dir(id string) string {
	return filepath.Join(c.hlsDir, config.ChannelDirPrefix+id)
}

// Collect gathers stats for one channel. Filesystem calls run on a separate
// goroutine so a hung mount can't stall the refresh loop past ctx; when ctx
// ends first the channel is reported stale with an ErrChannel reason.
func (c *Collector) Collect(ctx context.Context, id string) Stats {
	if err := ctx.Err(); err != nil {
		return c.timedOut(id, err)
	}

	done := make(chan Stats, 1)
	go func() {
		done <- c.collect(id)
	}()

	select {
	case s := <-done:
		return s
	case <-ctx.Done():
		return c.timedOut(id, ctx.Err())
	}
}

func (c *Collector) collect(id string) Stats {
	dir := c.Dir(id)
	s := Stats{ChannelID: id}

	s.SegmentCount, s.TotalSegmentSize, s.SegmentsErr = c.segments(dir)
	if s.SegmentsErr != nil {
		c.log.Debug("channel %s: %s", id, errors.Reason(s.SegmentsErr))
	}

	s.PlaylistSize, s.LastUpdate = c.playlist(dir)
	if !s.LastUpdate.Available() {
		c.log.Debug("channel %s: %s", id, s.LastUpdate.Reason())
	}
	s.Healthy = IsHealthy(s.LastUpdate)

	return s
}

// segments counts *.ts files directly inside dir, hidden ones included.
// Symlinks are followed and sized by their target; dangling links and
// directories are not segments.
func (c *Collector) segments(dir string) (int, uint64, error) {
	entries, err := afero.ReadDir(c.fs, dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, errors.WrapWithCode(err, errors.ErrChannel,
				"Channel output directory missing",
				"The worker may not have started writing yet")
		}
		return 0, 0, errors.WrapWithCode(err, errors.ErrChannel,
			"Couldn't list channel output directory",
			"Check permissions on "+dir)
	}

	var count int
	var total uint64
	for _, fi := range entries {
		name := fi.Name()
		if filepath.Ext(name) != SegmentExt {
			continue
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			target, err := c.fs.Stat(filepath.Join(dir, name))
			if err != nil {
				c.log.Debug("segment %s: %v", name, err)
				continue
			}
			fi = target
		}
		if !fi.Mode().IsRegular() {
			continue
		}
		count++
		if size := fi.Size(); size > 0 {
			total += uint64(size)
		}
	}
	return count, total, nil
}

func (c *Collector) playlist(dir string) (uint64, probe.Result[time.Duration]) {
	path := filepath.Join(dir, PlaylistName)

	fi, err := c.fs.Stat(path)
	if err != nil {
		msg := "Couldn't read playlist"
		if os.IsNotExist(err) {
			msg = "Playlist not found"
		}
		return 0, probe.Unavailable[time.Duration](errors.WrapWithCode(err, errors.ErrChannel, msg, ""))
	}
	if fi.IsDir() {
		return 0, probe.Unavailable[time.Duration](errors.New(errors.ErrChannel,
			fmt.Sprintf("Playlist path %s is a directory", path), ""))
	}

	var size uint64
	if fi.Size() > 0 {
		size = uint64(fi.Size())
	}
	return size, probe.OK(c.now().Sub(fi.ModTime()))
}

// timedOut reports a channel whose collection outlived ctx. Cancellation
// means the dashboard is shutting down, so it is only logged at debug level.
func (c *Collector) timedOut(id string, cause error) Stats {
	var err error
	if cause == context.Canceled {
		err = errors.WrapWithCode(cause, errors.ErrChannel,
			fmt.Sprintf("Channel %s stats canceled", id), "")
		c.log.Debug("channel %s: %s", id, errors.Reason(err))
	} else {
		err = errors.WrapWithCode(cause, errors.ErrChannel,
			fmt.Sprintf("Channel %s stats timed out", id),
			"Check the filesystem holding "+c.Dir(id))
		c.log.Warn("channel %s: %s", id, errors.Reason(err))
	}

	return Stats{
		ChannelID:   id,
		LastUpdate:  probe.Unavailable[time.Duration](err),
		SegmentsErr: err,
	}
}
