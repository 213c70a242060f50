// Package channel derives per-channel output statistics from the HLS
// directory a channel worker writes to.
//
// Each channel lives in {base}/hls/channel-{id} and holds a rolling set of
// .ts segments plus a playlist.m3u8 the worker rewrites on every segment.
// The playlist's modification age is the liveness signal: a channel whose
// playlist hasn't changed for StaleAfter is reported stale.
//
// Nothing is cached. Every Collect call re-reads the filesystem, and every
// sub-step degrades on its own, so a missing directory still yields playlist
// information and a missing playlist still yields segment counts.
package channel
