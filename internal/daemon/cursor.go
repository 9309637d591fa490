package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/hyprshy/hyprshy/internal/platform"
)

// GeometrySource is the subset of the platform backend the cursor watcher uses.
type GeometrySource interface {
	CursorPosition() (platform.Point, error)
	Monitors() ([]platform.Monitor, error)
}

// CursorWatcherConfig holds configuration for the cursor watcher.
type CursorWatcherConfig struct {
	PollInterval   time.Duration
	EnterThreshold int // at-top when local y <= this and previously away
	ExitThreshold  int // away when local y > this and previously at-top
	Logger         *slog.Logger
}

// CursorWatcher polls the cursor position and emits an edge-triggered
// at-top event when the cursor crosses the top edge of its monitor. The two
// thresholds form a hysteresis band so hovering near the boundary does not
// flap the bar.
type CursorWatcher struct {
	source   GeometrySource
	events   chan<- Event
	interval time.Duration
	enter    int
	exit     int
	logger   *slog.Logger

	atTop bool
}

// NewCursorWatcher creates a cursor watcher pushing into events.
func NewCursorWatcher(cfg CursorWatcherConfig, source GeometrySource, events chan<- Event) *CursorWatcher {
	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}

	return &CursorWatcher{
		source:   source,
		events:   events,
		interval: interval,
		enter:    cfg.EnterThreshold,
		exit:     cfg.ExitThreshold,
		logger:   cfg.Logger,
	}
}

// Run polls until the context is cancelled.
func (w *CursorWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("cursor watcher started",
		"interval", w.interval, "enter_px", w.enter, "exit_px", w.exit)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("cursor watcher stopped")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

// tick samples the cursor once. Source failures and points outside all known
// monitors are skipped silently; the next tick self-heals.
func (w *CursorWatcher) tick(ctx context.Context) {
	pos, err := w.source.CursorPosition()
	if err != nil {
		return
	}

	monitors, err := w.source.Monitors()
	if err != nil || len(monitors) == 0 {
		return
	}

	mon, ok := monitorAt(monitors, pos)
	if !ok {
		return
	}

	// Threshold comparison is against the owning monitor's local origin, so a
	// second monitor stacked to the right still reveals at its own top edge.
	localY := pos.Y - mon.Y

	threshold := w.enter
	if w.atTop {
		threshold = w.exit
	}

	atTop := localY <= threshold
	if atTop == w.atTop {
		return
	}
	w.atTop = atTop

	select {
	case w.events <- Event{Kind: EventCursorAtTop, Value: atTop}:
	case <-ctx.Done():
	}
}

func monitorAt(monitors []platform.Monitor, p platform.Point) (platform.Monitor, bool) {
	for _, mon := range monitors {
		if mon.Contains(p) {
			return mon, true
		}
	}
	return platform.Monitor{}, false
}
