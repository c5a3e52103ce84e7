// Package config loads the optional pokedit.ini configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-ini/ini"

	"github.com/pokedit/pokedit/pokedit/input/action"
	"github.com/pokedit/pokedit/pokedit/timing"
)

// Config holds the simulator's tunable session parameters.
type Config struct {
	Backend    string
	Scale      int
	TickPeriod time.Duration
	// Keys maps generic key names to actions, overriding the built-in
	// keymap. Nil when the config file defines no bindings.
	Keys map[string]action.Action
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:    "terminal",
		Scale:      3,
		TickPeriod: timing.DefaultTickPeriod,
	}
}

// DefaultPath returns the conventional config file location, or "" when the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pokedit", "pokedit.ini")
}

// Load reads the config file at path, falling back to defaults for any
// missing value. An empty path loads DefaultPath if it exists and plain
// defaults otherwise; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	display := file.Section("display")
	if key := display.Key("backend"); key.String() != "" {
		cfg.Backend = key.String()
	}
	if key := display.Key("scale"); key.String() != "" {
		scale, err := key.Int()
		if err != nil {
			return nil, fmt.Errorf("config %s: invalid scale: %w", path, err)
		}
		cfg.Scale = scale
	}
	if key := display.Key("tick"); key.String() != "" {
		tick, err := time.ParseDuration(key.String())
		if err != nil {
			return nil, fmt.Errorf("config %s: invalid tick: %w", path, err)
		}
		cfg.TickPeriod = tick
	}

	keys := file.Section("keys")
	for _, key := range keys.Keys() {
		act, err := action.Parse(key.String())
		if err != nil {
			return nil, fmt.Errorf("config %s: key %q: %w", path, key.Name(), err)
		}
		if cfg.Keys == nil {
			cfg.Keys = make(map[string]action.Action)
		}
		cfg.Keys[key.Name()] = act
	}

	return cfg, nil
}
