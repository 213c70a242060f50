package channel

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rileyhilliard/streamdash/internal/errors"
	"github.com/rileyhilliard/streamdash/internal/logger"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hlsRoot = "/var/streaming/hls"

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestCollector(t *testing.T) (*Collector, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	c := NewCollector(fs, hlsRoot, WithClock(func() time.Time { return fixedNow }))
	return c, fs
}

func writeFile(t *testing.T, fs afero.Fs, path string, size int, mtime time.Time) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, make([]byte, size), 0o644))
	require.NoError(t, fs.Chtimes(path, mtime, mtime))
}

func TestCollector_Dir(t *testing.T) {
	c, _ := newTestCollector(t)
	assert.Equal(t, "/var/streaming/hls/channel-7", c.Dir("7"))
}

func TestCollector_PlaylistStaleness(t *testing.T) {
	tests := []struct {
		name        string
		age         time.Duration
		wantHealthy bool
		wantUpdated string
	}{
		{name: "just written", age: 0, wantHealthy: true, wantUpdated: "0s ago"},
		{name: "29s old", age: 29 * time.Second, wantHealthy: true, wantUpdated: "29s ago"},
		{name: "just under threshold", age: StaleAfter - time.Millisecond, wantHealthy: true, wantUpdated: "29s ago"},
		{name: "exactly threshold", age: StaleAfter, wantHealthy: false, wantUpdated: "30s ago"},
		{name: "31s old", age: 31 * time.Second, wantHealthy: false, wantUpdated: "31s ago"},
		{name: "hours old", age: 3 * time.Hour, wantHealthy: false, wantUpdated: "10800s ago"},
		{name: "future mtime", age: -5 * time.Second, wantHealthy: true, wantUpdated: "0s ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, fs := newTestCollector(t)
			writeFile(t, fs, filepath.Join(c.Dir("1"), PlaylistName), 180, fixedNow.Add(-tt.age))

			s := c.Collect(context.Background(), "1")

			assert.Equal(t, "1", s.ChannelID)
			assert.Equal(t, tt.wantHealthy, s.Healthy)
			assert.Equal(t, tt.wantUpdated, s.Updated())
			assert.Equal(t, uint64(180), s.PlaylistSize)
		})
	}
}

func TestCollector_NoPlaylist(t *testing.T) {
	c, fs := newTestCollector(t)
	writeFile(t, fs, filepath.Join(c.Dir("3"), "seg0.ts"), 10, fixedNow)

	s := c.Collect(context.Background(), "3")

	assert.False(t, s.Healthy)
	assert.False(t, s.LastUpdate.Available())
	assert.Equal(t, "N/A", s.Updated())
	assert.Equal(t, uint64(0), s.PlaylistSize)
	assert.True(t, errors.IsCode(s.LastUpdate.Err, errors.ErrChannel))
	assert.Contains(t, s.LastUpdate.Reason(), "Playlist not found")

	// Segment counting is independent of the playlist.
	assert.NoError(t, s.SegmentsErr)
	assert.Equal(t, 1, s.SegmentCount)
}

func TestCollector_PlaylistIsDirectory(t *testing.T) {
	c, fs := newTestCollector(t)
	require.NoError(t, fs.MkdirAll(filepath.Join(c.Dir("4"), PlaylistName), 0o755))

	s := c.Collect(context.Background(), "4")

	assert.False(t, s.Healthy)
	assert.Equal(t, "N/A", s.Updated())
}

func TestCollector_SegmentAggregation(t *testing.T) {
	c, fs := newTestCollector(t)
	dir := c.Dir("2")
	writeFile(t, fs, filepath.Join(dir, "seg001.ts"), 100, fixedNow)
	writeFile(t, fs, filepath.Join(dir, "seg002.ts"), 200, fixedNow)
	writeFile(t, fs, filepath.Join(dir, "seg003.ts"), 300, fixedNow)

	s := c.Collect(context.Background(), "2")

	assert.NoError(t, s.SegmentsErr)
	assert.Equal(t, 3, s.SegmentCount)
	assert.Equal(t, uint64(600), s.TotalSegmentSize)
}

func TestCollector_SegmentFilter(t *testing.T) {
	c, fs := newTestCollector(t)
	dir := c.Dir("5")
	writeFile(t, fs, filepath.Join(dir, "seg001.ts"), 100, fixedNow)
	writeFile(t, fs, filepath.Join(dir, PlaylistName), 50, fixedNow)
	writeFile(t, fs, filepath.Join(dir, "seg002.ts.tmp"), 1000, fixedNow)
	writeFile(t, fs, filepath.Join(dir, "SEG003.TS"), 1000, fixedNow)
	writeFile(t, fs, filepath.Join(dir, ".seg004.ts"), 1000, fixedNow)
	writeFile(t, fs, filepath.Join(dir, "nested", "seg005.ts"), 1000, fixedNow)
	require.NoError(t, fs.MkdirAll(filepath.Join(dir, "old.ts"), 0o755))

	s := c.Collect(context.Background(), "5")

	assert.Equal(t, 2, s.SegmentCount, "seg001.ts and .seg004.ts")
	assert.Equal(t, uint64(1100), s.TotalSegmentSize)
}

func TestCollector_AbsentDirectory(t *testing.T) {
	c, _ := newTestCollector(t)

	s := c.Collect(context.Background(), "99")

	assert.Equal(t, "99", s.ChannelID)
	assert.Equal(t, 0, s.SegmentCount)
	assert.Equal(t, uint64(0), s.TotalSegmentSize)
	assert.False(t, s.Healthy)
	assert.Equal(t, "N/A", s.Updated())
	require.Error(t, s.SegmentsErr)
	assert.True(t, errors.IsCode(s.SegmentsErr, errors.ErrChannel))
	assert.Contains(t, errors.Reason(s.SegmentsErr), "directory missing")
}

func TestCollector_NoCaching(t *testing.T) {
	c, fs := newTestCollector(t)
	dir := c.Dir("1")
	writeFile(t, fs, filepath.Join(dir, PlaylistName), 10, fixedNow)
	writeFile(t, fs, filepath.Join(dir, "a.ts"), 10, fixedNow)

	first := c.Collect(context.Background(), "1")
	require.True(t, first.Healthy)
	require.Equal(t, 1, first.SegmentCount)

	require.NoError(t, fs.Remove(filepath.Join(dir, PlaylistName)))
	writeFile(t, fs, filepath.Join(dir, "b.ts"), 10, fixedNow)

	second := c.Collect(context.Background(), "1")
	assert.False(t, second.Healthy)
	assert.Equal(t, 2, second.SegmentCount)
}

func TestCollector_RealFilesystem(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "channel-8")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, PlaylistName), []byte("#EXTM3U\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seg1.ts"), make([]byte, 64), 0o644))

	c := NewCollector(afero.NewOsFs(), root)
	s := c.Collect(context.Background(), "8")

	assert.True(t, s.Healthy)
	assert.Equal(t, 1, s.SegmentCount)
	assert.Equal(t, uint64(64), s.TotalSegmentSize)
	assert.Equal(t, uint64(8), s.PlaylistSize)
}

func TestCollector_RealFilesystemHiddenAndSymlinkedSegments(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "channel-9")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.ts"), make([]byte, 100), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".b.ts"), make([]byte, 100), 0o644))
	require.NoError(t, os.Symlink("a.ts", filepath.Join(dir, "c.ts")))
	require.NoError(t, os.Symlink("gone.ts", filepath.Join(dir, "dangling.ts")))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.ts"), 0o755))

	c := NewCollector(afero.NewOsFs(), root)
	s := c.Collect(context.Background(), "9")

	require.NoError(t, s.SegmentsErr)
	assert.Equal(t, 3, s.SegmentCount)
	assert.Equal(t, uint64(300), s.TotalSegmentSize)
}

// hangingFs blocks every lookup until released, like an unresponsive NFS mount.
type hangingFs struct {
	afero.Fs
	release chan struct{}
}

func (h *hangingFs) Open(name string) (afero.File, error) {
	<-h.release
	return h.Fs.Open(name)
}

func (h *hangingFs) Stat(name string) (os.FileInfo, error) {
	<-h.release
	return h.Fs.Stat(name)
}

func TestCollector_TimesOutOnHungFilesystem(t *testing.T) {
	fs := &hangingFs{Fs: afero.NewMemMapFs(), release: make(chan struct{})}
	t.Cleanup(func() { close(fs.release) })

	log := logger.NewBufferLogger()
	c := NewCollector(fs, hlsRoot, WithLogger(log))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	s := c.Collect(ctx, "6")

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, "6", s.ChannelID)
	assert.False(t, s.Healthy)
	assert.Equal(t, "N/A", s.Updated())
	assert.True(t, errors.IsCode(s.LastUpdate.Err, errors.ErrChannel))
	assert.Contains(t, s.LastUpdate.Reason(), "timed out")
	assert.True(t, log.HasLevel("warn"))
}

func TestCollector_CanceledContext(t *testing.T) {
	c, fs := newTestCollector(t)
	writeFile(t, fs, filepath.Join(c.Dir("1"), PlaylistName), 10, fixedNow)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := c.Collect(ctx, "1")
	assert.False(t, s.Healthy)
	assert.Error(t, s.SegmentsErr)
}

func TestCollector_CanceledMidCollectionDoesNotWarn(t *testing.T) {
	fs := &hangingFs{Fs: afero.NewMemMapFs(), release: make(chan struct{})}
	t.Cleanup(func() { close(fs.release) })

	log := logger.NewBufferLogger()
	c := NewCollector(fs, hlsRoot, WithLogger(log))

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)

	s := c.Collect(ctx, "4")

	assert.False(t, s.Healthy)
	assert.Contains(t, s.LastUpdate.Reason(), "canceled")
	assert.False(t, log.HasLevel("warn"))
	assert.True(t, log.HasLevel("debug"))
}
