// Package config loads the botview runtime settings from BOTVIEW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/botview/parameter"
)

// Config is the runtime configuration of the botview binary
type Config struct {
	Debug   bool   `env:"BOTVIEW_DEBUG"`
	LogDir  string `env:"BOTVIEW_LOG_DIR" envDefault:"logs"`
	Seed    uint64 `env:"BOTVIEW_SEED"` // Zero seeds from the clock
	Roster  string `env:"BOTVIEW_ROSTER"`
	Catalog string `env:"BOTVIEW_CATALOG"`

	// WatchCatalog reloads the effect catalog when the file changes; needs Catalog
	WatchCatalog bool `env:"BOTVIEW_WATCH_CATALOG"`

	TickInterval time.Duration `env:"BOTVIEW_TICK_INTERVAL"`
	AIDelay      time.Duration `env:"BOTVIEW_AI_DELAY" envDefault:"1s"`
	Backdrop     int           `env:"BOTVIEW_BACKDROP"`

	Audio  bool `env:"BOTVIEW_AUDIO" envDefault:"true"`
	Volume int  `env:"BOTVIEW_VOLUME" envDefault:"50"`
}

// Validation errors
var (
	ErrTickInterval = errors.New("tick interval must be positive")
	ErrVolume       = errors.New("volume must be within 0-100")
	ErrWatch        = errors.New("catalog watch needs a catalog path")
	ErrBackdrop     = errors.New("backdrop out of range")
)

// ParseEnv loads configuration from environment variables
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}
	if cfg.TickInterval == 0 {
		cfg.TickInterval = parameter.TickInterval
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	switch {
	case c.TickInterval <= 0:
		return ErrTickInterval
	case c.Volume < 0 || c.Volume > 100:
		return fmt.Errorf("%w: %d", ErrVolume, c.Volume)
	case c.WatchCatalog && c.Catalog == "":
		return ErrWatch
	case c.Backdrop < 0 || c.Backdrop > parameter.BackdropMax:
		return fmt.Errorf("%w: %d", ErrBackdrop, c.Backdrop)
	}
	return nil
}
