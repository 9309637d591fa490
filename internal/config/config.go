package config

import (
	"fmt"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// BarConfig describes the bar process and the signal protocol used to drive
// its visibility.
type BarConfig struct {
	// ProcessName is the executable name of the bar (e.g. "waybar").
	ProcessName string `yaml:"process_name"`
	// ShowSignal and HideSignal are distinct signal names the bar is
	// configured to interpret as show and hide.
	ShowSignal string `yaml:"show_signal"`
	HideSignal string `yaml:"hide_signal"`
	// SignalAttempts bounds the retry loop per visibility transition.
	SignalAttempts int `yaml:"signal_attempts"`
	// Delays of the retry protocol, in milliseconds.
	RetryDelayMs    int `yaml:"retry_delay_ms"`
	CooldownDelayMs int `yaml:"cooldown_delay_ms"`
	SettleDelayMs   int `yaml:"settle_delay_ms"`
}

// Config is the effective hyprshy configuration.
type Config struct {
	// Backend selects the compositor backend: auto, hyprland or x11.
	Backend string `yaml:"backend"`
	// PollIntervalMs is the cursor poll interval.
	PollIntervalMs int `yaml:"poll_interval_ms"`
	// RevealThresholdPx reveals the bar when the cursor's monitor-local y
	// drops to this or below. HideThresholdPx re-arms hiding only once the
	// cursor moves past it; the gap between the two is the hysteresis band.
	RevealThresholdPx int `yaml:"reveal_threshold_px"`
	HideThresholdPx   int `yaml:"hide_threshold_px"`

	Bar BarConfig `yaml:"bar"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Backend:           "auto",
		PollIntervalMs:    100,
		RevealThresholdPx: 3,
		HideThresholdPx:   50,
		Bar: BarConfig{
			ProcessName:     "waybar",
			ShowSignal:      "SIGUSR1",
			HideSignal:      "SIGUSR2",
			SignalAttempts:  3,
			RetryDelayMs:    50,
			CooldownDelayMs: 200,
			SettleDelayMs:   100,
		},
	}
}

// Validate checks the configuration for values the daemon cannot run with.
func (c *Config) Validate() error {
	switch c.Backend {
	case "auto", "hyprland", "x11":
	default:
		return fmt.Errorf("backend must be auto, hyprland or x11, got %q", c.Backend)
	}
	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive, got %d", c.PollIntervalMs)
	}
	if c.RevealThresholdPx < 0 {
		return fmt.Errorf("reveal_threshold_px must not be negative, got %d", c.RevealThresholdPx)
	}
	if c.HideThresholdPx <= c.RevealThresholdPx {
		return fmt.Errorf("hide_threshold_px (%d) must be greater than reveal_threshold_px (%d)",
			c.HideThresholdPx, c.RevealThresholdPx)
	}
	if c.Bar.ProcessName == "" {
		return fmt.Errorf("bar.process_name must not be empty")
	}
	if _, err := parseSignal(c.Bar.ShowSignal); err != nil {
		return fmt.Errorf("bar.show_signal: %w", err)
	}
	if _, err := parseSignal(c.Bar.HideSignal); err != nil {
		return fmt.Errorf("bar.hide_signal: %w", err)
	}
	if c.Bar.ShowSignal == c.Bar.HideSignal {
		return fmt.Errorf("bar.show_signal and bar.hide_signal must differ, both are %q", c.Bar.ShowSignal)
	}
	if c.Bar.SignalAttempts <= 0 {
		return fmt.Errorf("bar.signal_attempts must be positive, got %d", c.Bar.SignalAttempts)
	}
	if c.Bar.RetryDelayMs < 0 || c.Bar.CooldownDelayMs < 0 || c.Bar.SettleDelayMs < 0 {
		return fmt.Errorf("bar delays must not be negative")
	}
	return nil
}

// PollInterval returns the cursor poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// ShowSignalNum returns the parsed show signal. Call Validate first.
func (b BarConfig) ShowSignalNum() (syscall.Signal, error) {
	return parseSignal(b.ShowSignal)
}

// HideSignalNum returns the parsed hide signal. Call Validate first.
func (b BarConfig) HideSignalNum() (syscall.Signal, error) {
	return parseSignal(b.HideSignal)
}

func parseSignal(name string) (syscall.Signal, error) {
	sig := unix.SignalNum(name)
	if sig == 0 {
		return 0, fmt.Errorf("unknown signal %q", name)
	}
	return sig, nil
}
