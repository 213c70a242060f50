package config

import (
	"path/filepath"
	"time"
)

// Fixed layout of the directories produced by the channel workers.
const (
	// HLSSubdir holds one output directory per channel under the base dir.
	HLSSubdir = "hls"
	// ConfigSubdir is reserved for the channel manager's own configuration.
	// streamdash never reads it.
	ConfigSubdir = "config"
	// ChannelDirPrefix prefixes the channel id in output directory names.
	ChannelDirPrefix = "channel-"
)

// Config holds everything streamdash needs to locate its inputs.
// Health thresholds are deliberately absent: they are compile-time constants.
type Config struct {
	// BaseDir is the streaming root, containing hls/ and config/.
	BaseDir string `yaml:"base_dir" mapstructure:"base_dir"`

	// DiskPath is the mount queried for disk usage. Defaults to BaseDir.
	DiskPath string `yaml:"disk_path" mapstructure:"disk_path"`

	// Interval is the target time between the start of two refresh cycles.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// CPUWindow is how long CPU usage is measured for. It is spent inside
	// Interval, not added to it.
	CPUWindow time.Duration `yaml:"cpu_window" mapstructure:"cpu_window"`

	// ChannelTimeout bounds the filesystem inspection of one channel.
	ChannelTimeout time.Duration `yaml:"channel_timeout" mapstructure:"channel_timeout"`

	Registry RegistryConfig `yaml:"registry" mapstructure:"registry"`

	// Plain forces the line-oriented loop even on a terminal.
	Plain bool `yaml:"plain" mapstructure:"plain"`

	// LogFile receives log output. Empty disables logging in TUI mode and
	// logs warnings to stderr in plain mode.
	LogFile string `yaml:"log_file" mapstructure:"log_file"`
}

// RegistryConfig describes how to ask the process supervisor for its workers.
type RegistryConfig struct {
	// Command is the supervisor CLI, "pm2" by default.
	Command string `yaml:"command" mapstructure:"command"`

	// Args produce a JSON process list on stdout, ["jlist"] by default.
	Args []string `yaml:"args" mapstructure:"args"`

	// Timeout kills a hung supervisor query.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseDir:        "/var/streaming",
		Interval:       2 * time.Second,
		CPUWindow:      time.Second,
		ChannelTimeout: 2 * time.Second,
		Registry: RegistryConfig{
			Command: "pm2",
			Args:    []string{"jlist"},
			Timeout: 5 * time.Second,
		},
	}
}

// HLSDir returns the directory holding all channel output directories.
func (c *Config) HLSDir() string {
	return filepath.Join(c.BaseDir, HLSSubdir)
}

// ConfigDir returns the reserved channel manager config directory.
func (c *Config) ConfigDir() string {
	return filepath.Join(c.BaseDir, ConfigSubdir)
}

// EffectiveDiskPath returns DiskPath, falling back to BaseDir.
func (c *Config) EffectiveDiskPath() string {
	if c.DiskPath != "" {
		return c.DiskPath
	}
	return c.BaseDir
}
