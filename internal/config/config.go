// Package config loads and saves the user configuration. The loaded value
// is passed into the scan and interaction loop explicitly and never mutated
// by them; the only write path is Save, used by the theme command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the TOML config file under the config directory.
const FileName = "config.toml"

// Duration wraps time.Duration so TOML can carry values like "2s".
type Duration struct {
	time.Duration
}

// UnmarshalTOML accepts both string durations ("2s") and bare TOML numbers,
// which decode as int64/float64 and never reach UnmarshalText. Bare numbers
// are seconds.
func (d *Duration) UnmarshalTOML(v interface{}) error {
	switch val := v.(type) {
	case string:
		return d.UnmarshalText([]byte(val))
	case int64:
		d.Duration = time.Duration(val) * time.Second
		return nil
	case float64:
		d.Duration = time.Duration(val * float64(time.Second))
		return nil
	}
	return fmt.Errorf("invalid duration value %v", v)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		// Bare numbers are accepted as seconds for compatibility with
		// older config files.
		var secs float64
		if _, serr := fmt.Sscanf(string(text), "%g", &secs); serr == nil {
			d.Duration = time.Duration(secs * float64(time.Second))
			return nil
		}
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the persisted user configuration.
type Config struct {
	// IdleThreshold is the aggregated CPU percent above which a session
	// counts as actively computing.
	IdleThreshold float64 `toml:"idle_threshold"`

	// RefreshInterval is how long the interactive loop waits for input
	// before rescanning.
	RefreshInterval Duration `toml:"refresh_interval"`

	// ASCII switches the status glyphs from unicode to plain ASCII.
	ASCII bool `toml:"ascii"`

	// Theme selects the color scheme: "dark", "light", or "mono".
	Theme string `toml:"theme"`

	// LogLevel is the minimum log level for the debug log file.
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		IdleThreshold:   3.0,
		RefreshInterval: Duration{2 * time.Second},
		ASCII:           false,
		Theme:           "dark",
		LogLevel:        "info",
	}
}

// Dir returns the config directory, honouring AGENTPANE_CONFIG_DIR for
// tests and unusual setups.
func Dir() string {
	if dir := os.Getenv("AGENTPANE_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "agentpane")
}

// Load reads the config file, filling unset fields with defaults. A missing
// file is not an error; a malformed one is, and the defaults are returned
// alongside it so the caller can keep going.
func Load() (Config, error) {
	cfg := Default()
	path := filepath.Join(Dir(), FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.RefreshInterval.Duration <= 0 {
		cfg.RefreshInterval = Default().RefreshInterval
	}
	if cfg.IdleThreshold < 0 {
		cfg.IdleThreshold = Default().IdleThreshold
	}
	return cfg, nil
}

// Save writes the whole config record, creating the directory as needed.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, FileName))
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
