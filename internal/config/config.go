// Package config loads optional user defaults from
// $XDG_CONFIG_HOME/proc/config.toml (fallback ~/.config/proc/config.toml).
//
// The file only holds preference defaults; command-line flags always
// win. Recovery protocol constants (escalation waits, CPU thresholds)
// are intentionally not configurable.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/proc-cli/proc/internal/exitcode"
)

// Config is the decoded config file.
type Config struct {
	List  ListConfig  `toml:"list"`
	Stop  StopConfig  `toml:"stop"`
	Stuck StuckConfig `toml:"stuck"`
}

// ListConfig holds listing defaults shared by list, by, and in.
type ListConfig struct {
	// Sort is the default sort key: cpu, mem, pid, or name.
	Sort string `toml:"sort"`
	// Limit caps listing output; 0 means unlimited.
	Limit int `toml:"limit"`
}

// StopConfig holds graceful-stop defaults.
type StopConfig struct {
	// TimeoutSecs is how long to wait for a graceful exit before
	// escalating to a forceful kill.
	TimeoutSecs int `toml:"timeout_secs"`
}

// StuckConfig holds stuck-detection defaults.
type StuckConfig struct {
	// TimeoutSecs is the minimum run time before a busy process
	// counts as stuck.
	TimeoutSecs int `toml:"timeout_secs"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		List:  ListConfig{Sort: "cpu"},
		Stop:  StopConfig{TimeoutSecs: 10},
		Stuck: StuckConfig{TimeoutSecs: 300},
	}
}

// Path returns the config file location. PROC_CONFIG overrides the
// XDG lookup, mainly for tests.
func Path() string {
	if p := os.Getenv("PROC_CONFIG"); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "proc", "config.toml")
}

// Load reads the config file, layering it over the defaults. A missing
// file is not an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()
	path := Path()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, exitcode.Wrapf(exitcode.KindParse, err, "parsing %s", path)
	}
	return cfg, nil
}
