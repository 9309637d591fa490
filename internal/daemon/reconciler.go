package daemon

import (
	"context"
	"log/slog"
	"sync"
)

// BarDriver applies a visibility decision to the bar process. Implementations
// must be safe for concurrent callers and must never return the failure to the
// reconciler; convergence happens on the next event.
type BarDriver interface {
	SetVisible(desired bool)
}

// State is a snapshot of the reconciler's flags and last decision.
type State struct {
	CursorAtTop bool
	WindowsOpen bool
	Visible     bool
}

// Reconciler is the single consumer of the event queue. It folds the two
// watcher streams into one desired-visibility decision and drives the bar
// only when the decision changes:
//
//	desired = cursorAtTop || !windowsOpen
//
// A cursor on the top edge always forces the bar visible (manual reveal
// wins); otherwise the bar hides exactly while windows are open.
type Reconciler struct {
	bar    BarDriver
	events <-chan Event
	logger *slog.Logger

	mu           sync.Mutex // guards the fields below for State(); handle() is the only writer
	cursorAtTop  bool
	windowsOpen  bool
	lastDecision bool
}

// NewReconciler creates a reconciler. windowsOpen is the result of an initial
// synchronous query, so the starting decision is already correct and the first
// watcher events are no-ops instead of spurious toggles.
func NewReconciler(events <-chan Event, bar BarDriver, windowsOpen bool, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		bar:          bar,
		events:       events,
		logger:       logger,
		windowsOpen:  windowsOpen,
		lastDecision: !windowsOpen,
	}
}

// Prime pushes the initial decision through the driver once. The bar is
// assumed visible at process start, so this hides it when windows are already
// open and is a no-op otherwise.
func (r *Reconciler) Prime() {
	r.mu.Lock()
	decision := r.lastDecision
	r.mu.Unlock()
	r.bar.SetVisible(decision)
}

// Run consumes events until the context is cancelled or the queue closes.
func (r *Reconciler) Run(ctx context.Context) {
	r.logger.Info("reconciler started")
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case ev, ok := <-r.events:
			if !ok {
				r.logger.Info("reconciler stopped: queue closed")
				return
			}
			r.handle(ev)
		}
	}
}

func (r *Reconciler) handle(ev Event) {
	r.mu.Lock()
	switch ev.Kind {
	case EventCursorAtTop:
		r.cursorAtTop = ev.Value
	case EventWindowsOpen:
		r.windowsOpen = ev.Value
	}

	desired := r.cursorAtTop || !r.windowsOpen
	changed := desired != r.lastDecision
	r.lastDecision = desired
	cursorAtTop, windowsOpen := r.cursorAtTop, r.windowsOpen
	r.mu.Unlock()

	if !changed {
		return
	}

	r.logger.Info("visibility decision changed",
		"visible", desired, "cursor_at_top", cursorAtTop, "windows_open", windowsOpen)

	// The driver owns retry and belief correction; the decision is recorded
	// above regardless of delivery, and a wrong belief self-corrects on the
	// next event.
	r.bar.SetVisible(desired)
}

// State returns a snapshot of the reconciler flags for status reporting.
func (r *Reconciler) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return State{
		CursorAtTop: r.cursorAtTop,
		WindowsOpen: r.windowsOpen,
		Visible:     r.lastDecision,
	}
}
