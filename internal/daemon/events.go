package daemon

// EventKind selects which reconciler flag an event updates.
type EventKind int

const (
	// EventCursorAtTop reports whether the cursor touches the top edge of its
	// monitor. Edge-triggered: the cursor watcher only emits on change.
	EventCursorAtTop EventKind = iota
	// EventWindowsOpen reports whether any window is open on the active
	// workspace. Level-triggered: the activity watcher emits on every
	// relevant notification; the reconciler dedups.
	EventWindowsOpen
)

func (k EventKind) String() string {
	switch k {
	case EventCursorAtTop:
		return "cursor_at_top"
	case EventWindowsOpen:
		return "windows_open"
	default:
		return "unknown"
	}
}

// Event is one observation pushed by a watcher into the reconciler queue.
type Event struct {
	Kind  EventKind
	Value bool
}
