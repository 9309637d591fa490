package daemon

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hyprshy/hyprshy/internal/platform"
)

// ActivitySource is the subset of the platform backend the activity watcher uses.
type ActivitySource interface {
	OpenWindows() (int, error)
	SubscribeChanges(ctx context.Context) (<-chan platform.ChangeEvent, error)
}

// relevantMarkers select the change notifications that can alter the open
// window count. Matched by substring so variants like "workspacev2" and
// "createworkspace" qualify too. "clientlist" is the X11 backend's marker.
var relevantMarkers = []string{"openwindow", "closewindow", "workspace", "clientlist"}

func isRelevant(kind string) bool {
	for _, marker := range relevantMarkers {
		if strings.Contains(kind, marker) {
			return true
		}
	}
	return false
}

// ActivityWatcher drains the compositor's change-notification stream and
// re-queries the authoritative window count on every relevant notification.
// The notification payload itself is never trusted; it carries no state.
type ActivityWatcher struct {
	source ActivitySource
	events chan<- Event
	logger *slog.Logger
}

// NewActivityWatcher creates an activity watcher pushing into events.
func NewActivityWatcher(source ActivitySource, events chan<- Event, logger *slog.Logger) *ActivityWatcher {
	return &ActivityWatcher{
		source: source,
		events: events,
		logger: logger,
	}
}

// Run subscribes and consumes notifications until the context is cancelled or
// the stream closes. A failed subscription disables window tracking for the
// rest of the process; cursor-driven reveal keeps working.
func (w *ActivityWatcher) Run(ctx context.Context) {
	changes, err := w.source.SubscribeChanges(ctx)
	if err != nil {
		w.logger.Error("activity watcher: subscription failed, window tracking disabled", "error", err)
		return
	}

	w.logger.Info("activity watcher started")

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("activity watcher stopped")
			return
		case ev, ok := <-changes:
			if !ok {
				w.logger.Warn("activity watcher: change stream closed")
				return
			}
			if !isRelevant(ev.Kind) {
				continue
			}

			count, err := w.source.OpenWindows()
			if err != nil {
				w.logger.Warn("activity watcher: window query failed", "error", err)
				continue
			}

			// Level-triggered on purpose: the reconciler dedups repeats.
			select {
			case w.events <- Event{Kind: EventWindowsOpen, Value: count > 0}:
			case <-ctx.Done():
				return
			}
		}
	}
}
