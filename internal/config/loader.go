package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rileyhilliard/streamdash/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the config file looked up in the current directory.
	ConfigFileName = "streamdash.yaml"
	// GlobalConfigDir is the directory for the per-user config.
	GlobalConfigDir = ".config/streamdash"
	// GlobalConfigFile is the per-user config file name.
	GlobalConfigFile = "config.yaml"
	// EnvPrefix prefixes every environment override, e.g. STREAMDASH_BASE_DIR.
	EnvPrefix = "STREAMDASH"
)

// Load reads configuration from path, or from the first file Find locates
// when path is empty. Missing files are fine: defaults and environment
// overrides still apply.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := Find()
		if err != nil {
			return nil, err
		}
		path = found
	}

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found: "+path,
					"Check the path, or remove it to run with defaults")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. streamdash.yaml in current directory
// 2. ~/.config/streamdash/config.yaml
//
// Returns the path to the config file, or empty string if not found.
func Find() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// newViper builds a viper instance with defaults and env bindings.
// Every key needs a default, otherwise AutomaticEnv never sees it during Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("base_dir", def.BaseDir)
	v.SetDefault("disk_path", "")
	v.SetDefault("interval", def.Interval.String())
	v.SetDefault("cpu_window", def.CPUWindow.String())
	v.SetDefault("channel_timeout", def.ChannelTimeout.String())
	v.SetDefault("registry.command", def.Registry.Command)
	v.SetDefault("registry.args", def.Registry.Args)
	v.SetDefault("registry.timeout", def.Registry.Timeout.String())
	v.SetDefault("plain", false)
	v.SetDefault("log_file", "")
}

// parseConfig converts viper config to our Config struct and validates it.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		source := "environment"
		if path != "" {
			source = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+source)
	}

	cfg.BaseDir = ExpandTilde(Expand(cfg.BaseDir))
	cfg.DiskPath = ExpandTilde(Expand(cfg.DiskPath))
	cfg.LogFile = ExpandTilde(Expand(cfg.LogFile))

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
