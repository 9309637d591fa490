package bar

import (
	"log/slog"
	"sync"
	"time"
)

// Signaller delivers a single visibility signal to the bar process. Delivery
// is one-shot and unacknowledged: there is no way to read the bar's actual
// state back, which is why the driver keeps a belief instead.
type Signaller interface {
	Signal(visible bool) error
}

// DriverConfig holds the retry schedule for the driver.
type DriverConfig struct {
	Attempts      int           // bounded retry attempts per transition
	RetryDelay    time.Duration // delay between failed attempts
	CooldownDelay time.Duration // delay before the single extra attempt
	SettleDelay   time.Duration // grace period after the retry sequence
	Logger        *slog.Logger
}

// Driver owns all bar-visibility bookkeeping. The bar offers no query API, so
// the driver tracks its best belief about the displayed state: assumed visible
// at start, corrected whenever a signal round trip completes, and self-healing
// on the next observed mismatch if the bar restarts or a signal is lost.
//
// Callers are serialized by the reconciler in practice, but the driver defends
// against concurrent callers: belief is only touched under the mutex, and the
// mutex is never held across a sleep or a signal send.
type Driver struct {
	signaller Signaller
	attempts  int
	retry     time.Duration
	cooldown  time.Duration
	settle    time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	visible bool
}

// NewDriver creates a driver around signaller. Zero config fields get the
// defaults of 3 attempts, 50ms retry delay, 200ms cooldown and 100ms settle.
func NewDriver(cfg DriverConfig, signaller Signaller) *Driver {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = 50 * time.Millisecond
	}
	if cfg.CooldownDelay <= 0 {
		cfg.CooldownDelay = 200 * time.Millisecond
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = 100 * time.Millisecond
	}

	return &Driver{
		signaller: signaller,
		attempts:  cfg.Attempts,
		retry:     cfg.RetryDelay,
		cooldown:  cfg.CooldownDelay,
		settle:    cfg.SettleDelay,
		logger:    cfg.Logger,
		visible:   true, // bars start visible
	}
}

// BelievedVisible returns the driver's current belief about the bar state.
func (d *Driver) BelievedVisible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visible
}

// SetVisible drives the bar toward desired. Idempotent: a call matching the
// current belief sends nothing. Failures are logged and never propagated; the
// next real state change re-attempts.
func (d *Driver) SetVisible(desired bool) {
	d.mu.Lock()
	if d.visible == desired {
		d.mu.Unlock()
		return
	}
	d.mu.Unlock()

	sent := false
	for attempt := 1; attempt <= d.attempts+1; attempt++ {
		// Re-check before each attempt: a concurrent caller may have
		// converged the state while we slept.
		d.mu.Lock()
		if d.visible == desired {
			d.mu.Unlock()
			return
		}
		d.mu.Unlock()

		err := d.signaller.Signal(desired)

		d.mu.Lock()
		if d.visible == desired {
			// Someone raced in while the lock was released; their signal
			// already landed, ours is at worst a duplicate toggle of equal
			// direction.
			d.mu.Unlock()
			return
		}
		if err == nil {
			d.visible = desired
			sent = true
			d.mu.Unlock()
			break
		}
		d.mu.Unlock()

		d.logger.Warn("bar signal failed",
			"attempt", attempt, "visible", desired, "error", err)

		switch {
		case attempt < d.attempts:
			time.Sleep(d.retry)
		case attempt == d.attempts:
			// The bar may be mid-restart and not yet re-registered its
			// handler; give it one longer-fused extra attempt.
			time.Sleep(d.cooldown)
		}
	}

	// Let the bar finish processing before the next transition piles on.
	time.Sleep(d.settle)

	d.mu.Lock()
	if sent && d.visible != desired {
		// A concurrent call flipped belief while we settled. Our signal was
		// the last one delivered, so trust it.
		d.visible = desired
	}
	believed := d.visible
	d.mu.Unlock()

	if !sent {
		d.logger.Warn("bar visibility unchanged after retries; next state change will retry",
			"desired", desired, "believed_visible", believed)
	}
}
