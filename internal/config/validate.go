package config

import (
	"fmt"
	"time"

	"github.com/rileyhilliard/streamdash/internal/errors"
)

// minInterval keeps the loop from spinning on a typo like "2ms".
const minInterval = 500 * time.Millisecond

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.BaseDir == "" {
		return errors.New(errors.ErrConfig,
			"base_dir is empty",
			"Point base_dir at the streaming root, e.g. /var/streaming")
	}

	if cfg.Interval < minInterval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Refresh interval %s is too short", cfg.Interval),
			fmt.Sprintf("Use at least %s, e.g. interval: 2s", minInterval))
	}

	if cfg.CPUWindow <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("CPU sampling window must be positive, got %s", cfg.CPUWindow),
			"Set cpu_window to something like 1s")
	}

	if cfg.CPUWindow >= cfg.Interval {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("CPU sampling window %s doesn't fit in refresh interval %s", cfg.CPUWindow, cfg.Interval),
			"Make cpu_window shorter than interval, e.g. cpu_window: 1s with interval: 2s")
	}

	if cfg.ChannelTimeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("channel_timeout must be positive, got %s", cfg.ChannelTimeout),
			"Set channel_timeout to something like 2s")
	}

	if cfg.Registry.Command == "" {
		return errors.New(errors.ErrConfig,
			"registry.command is empty",
			"Set registry.command to the supervisor CLI, usually pm2")
	}

	if cfg.Registry.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("registry.timeout must be positive, got %s", cfg.Registry.Timeout),
			"Set registry.timeout to something like 5s")
	}

	return nil
}
