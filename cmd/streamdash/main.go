// Command streamdash shows host, pm2 worker and HLS channel health in the terminal.
package main

import (
	"os"

	"github.com/rileyhilliard/streamdash/internal/cli"
)

// Stamped by the release build:
//
//	go build -ldflags "-X main.version=0.3.0 -X main.commit=$(git rev-parse --short HEAD) -X main.date=$(date -u +%F)" ./cmd/streamdash
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	os.Exit(cli.Execute())
}
