package channel

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/streamdash/internal/probe"
)

const (
	// PlaylistName is the manifest a worker rewrites as segments roll.
	PlaylistName = "playlist.m3u8"

	// SegmentExt is the extension of media segment files.
	SegmentExt = ".ts"

	// StaleAfter is how old a playlist may get before its channel is stale.
	StaleAfter = 30 * time.Second
)

// NotAvailable is shown when a channel's last update can't be determined.
const NotAvailable = "N/A"

// Stats describes one channel's output directory at collection time.
type Stats struct {
	ChannelID        string
	SegmentCount     int
	TotalSegmentSize uint64
	PlaylistSize     uint64

	// LastUpdate is the playlist's age, unavailable when it couldn't be stat'd.
	LastUpdate probe.Result[time.Duration]

	// Healthy is true only when the playlist exists and is younger than StaleAfter.
	Healthy bool

	// SegmentsErr is set when the directory couldn't be listed. The counts
	// are zero in that case.
	SegmentsErr error
}

// Updated returns the playlist age for display, e.g. "12s ago" or "N/A".
func (s Stats) Updated() string {
	return FormatAge(s.LastUpdate)
}

// FormatAge renders an age in whole seconds. Future modification times
// (clock skew between the worker and the dashboard) show as "0s ago".
func FormatAge(age probe.Result[time.Duration]) string {
	if !age.Available() {
		return NotAvailable
	}
	secs := int64(age.Value / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%ds ago", secs)
}

// IsHealthy applies the staleness rule to a playlist age.
func IsHealthy(age probe.Result[time.Duration]) bool {
	return age.Available() && age.Value < StaleAfter
}
