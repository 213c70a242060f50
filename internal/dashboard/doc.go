// Package dashboard runs the streaming server dashboard: it collects one
// Snapshot per cycle and renders it as a Frame.
//
// # Cycle
//
// Each cycle samples the host, lists supervised workers, then collects
// channel stats for every worker named channel-<id>, in worker order.
// Nothing carries over between cycles. Every collector degrades instead of
// failing, so a cycle always produces a frame.
//
// # Front-ends
//
// Two loops share Collector and Render:
//
//	Model     - Bubble Tea program with a scrollable viewport, used on a TTY
//	RunPlain  - redraws on every tick of a TickSource, used for pipes and --plain
//
// Both stop on interrupt and print a closing message.
//
// # Scheduling
//
// Cadence computes the pause before the next cycle net of the time the
// previous one took, so a 1s CPU sampling window doesn't stretch a 2s
// refresh interval to 3s.
package dashboard
