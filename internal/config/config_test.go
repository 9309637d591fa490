package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantSub string
	}{
		{"bad backend", func(c *Config) { c.Backend = "cosmic" }, "backend"},
		{"zero poll interval", func(c *Config) { c.PollIntervalMs = 0 }, "poll_interval_ms"},
		{"negative reveal threshold", func(c *Config) { c.RevealThresholdPx = -1 }, "reveal_threshold_px"},
		{"hide below reveal", func(c *Config) { c.HideThresholdPx = 2 }, "hide_threshold_px"},
		{"empty process name", func(c *Config) { c.Bar.ProcessName = "" }, "process_name"},
		{"unknown show signal", func(c *Config) { c.Bar.ShowSignal = "SIGBOGUS" }, "show_signal"},
		{"unknown hide signal", func(c *Config) { c.Bar.HideSignal = "nope" }, "hide_signal"},
		{"identical signals", func(c *Config) { c.Bar.HideSignal = c.Bar.ShowSignal }, "must differ"},
		{"zero attempts", func(c *Config) { c.Bar.SignalAttempts = 0 }, "signal_attempts"},
		{"negative delay", func(c *Config) { c.Bar.RetryDelayMs = -1 }, "delays"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Fatalf("Validate() error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.Bar.ProcessName != "waybar" {
		t.Fatalf("default process name = %q, want waybar", cfg.Bar.ProcessName)
	}
	if cfg.PollIntervalMs != 100 {
		t.Fatalf("default poll interval = %d, want 100", cfg.PollIntervalMs)
	}
}

func TestLoadFromPath_OverridesAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
poll_interval_ms: 250
bar:
  process_name: polybar
  show_signal: SIGUSR1
  hide_signal: SIGTERM
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if cfg.PollIntervalMs != 250 {
		t.Fatalf("poll interval = %d, want 250", cfg.PollIntervalMs)
	}
	if cfg.Bar.ProcessName != "polybar" {
		t.Fatalf("process name = %q, want polybar", cfg.Bar.ProcessName)
	}
	// Untouched keys keep their defaults.
	if cfg.HideThresholdPx != 50 {
		t.Fatalf("hide threshold = %d, want default 50", cfg.HideThresholdPx)
	}
}

func TestLoadFromPath_InvalidConfigFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("poll_interval_ms: -5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromPath(path); err == nil {
		t.Fatal("LoadFromPath() succeeded on invalid config")
	}
}

func TestSignalNums(t *testing.T) {
	cfg := Default()

	show, err := cfg.Bar.ShowSignalNum()
	if err != nil {
		t.Fatalf("ShowSignalNum() error: %v", err)
	}
	hide, err := cfg.Bar.HideSignalNum()
	if err != nil {
		t.Fatalf("HideSignalNum() error: %v", err)
	}
	if show == hide {
		t.Fatalf("show and hide signals parsed to the same number %d", show)
	}
}
