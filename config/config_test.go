package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/botview/parameter"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Debug || cfg.WatchCatalog || cfg.Catalog != "" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.TickInterval != parameter.TickInterval {
		t.Errorf("tick interval = %v, want %v", cfg.TickInterval, parameter.TickInterval)
	}
	if cfg.AIDelay != time.Second || !cfg.Audio || cfg.Volume != 50 || cfg.LogDir != "logs" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BOTVIEW_DEBUG", "true")
	t.Setenv("BOTVIEW_SEED", "42")
	t.Setenv("BOTVIEW_CATALOG", "effects.yaml")
	t.Setenv("BOTVIEW_WATCH_CATALOG", "1")
	t.Setenv("BOTVIEW_TICK_INTERVAL", "33ms")
	t.Setenv("BOTVIEW_AUDIO", "false")
	t.Setenv("BOTVIEW_VOLUME", "80")
	t.Setenv("BOTVIEW_BACKDROP", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !cfg.Debug || cfg.Seed != 42 || cfg.Catalog != "effects.yaml" || !cfg.WatchCatalog {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.TickInterval != 33*time.Millisecond || cfg.Audio || cfg.Volume != 80 || cfg.Backdrop != 2 {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("BOTVIEW_VOLUME", "loud")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{TickInterval: parameter.TickInterval, Volume: 50}
	}
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"valid", func(*Config) {}, nil},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }, ErrTickInterval},
		{"negative tick", func(c *Config) { c.TickInterval = -time.Second }, ErrTickInterval},
		{"volume high", func(c *Config) { c.Volume = 101 }, ErrVolume},
		{"volume low", func(c *Config) { c.Volume = -1 }, ErrVolume},
		{"watch without catalog", func(c *Config) { c.WatchCatalog = true }, ErrWatch},
		{"watch with catalog", func(c *Config) { c.WatchCatalog, c.Catalog = true, "x.yaml" }, nil},
		{"backdrop", func(c *Config) { c.Backdrop = parameter.BackdropMax + 1 }, ErrBackdrop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}
