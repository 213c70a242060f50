// Package cli implements the streamdash command line.
//
// There is a single root command with no subcommands and no flags beyond
// --help and --version. Running it loads configuration, wires the host
// sampler, the pm2 registry and the channel collector into a
// dashboard.Collector, and starts a front-end:
//
//	stdout is a terminal and plain is false -> Bubble Tea TUI
//	otherwise                               -> plain redraw loop
//
// SIGINT and SIGTERM cancel the command context. Both front-ends treat that
// as a normal stop, print "Dashboard closed" and exit 0.
package cli
