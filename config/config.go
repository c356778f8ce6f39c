// Package config holds the environment-derived defaults for the pstree command.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Source backends
const (
	SourceAuto     = "auto"
	SourceProcfs   = "procfs"
	SourceGopsutil = "gopsutil"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds settings that command-line flags may override
type Config struct {
	ProcRoot string        `env:"PSTREE_PROC_ROOT" envDefault:"/proc"`
	Source   string        `env:"PSTREE_SOURCE" envDefault:"auto"`
	Timeout  time.Duration `env:"PSTREE_TIMEOUT" envDefault:"0s"`
	Color    string        `env:"PSTREE_COLOR" envDefault:"auto"`
	NoColor  string        `env:"NO_COLOR"`
}

// Load parses the configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	switch c.Source {
	case SourceAuto, SourceProcfs, SourceGopsutil:
	default:
		return fmt.Errorf("invalid source %q (want %s, %s or %s)", c.Source, SourceAuto, SourceProcfs, SourceGopsutil)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q (want %s, %s or %s)", c.Color, ColorAuto, ColorAlways, ColorNever)
	}

	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

// UseColor resolves the color mode. terminal reports whether the output is
// an interactive terminal. NO_COLOR wins over auto but not over always.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return terminal && c.NoColor == ""
	}
}
