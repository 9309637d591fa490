package platform

import "context"

// Point is a cursor position in desktop pixel coordinates.
type Point struct {
	X int
	Y int
}

// Monitor describes one display's placement in desktop space.
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the desktop-space point lies on this monitor.
func (m Monitor) Contains(p Point) bool {
	return p.X >= m.X && p.X < m.X+m.Width && p.Y >= m.Y && p.Y < m.Y+m.Height
}

// ChangeEvent is one window/workspace change notification from the compositor.
// Kind carries the notification marker; Payload is backend-specific and carries
// no authoritative state.
type ChangeEvent struct {
	Kind    string
	Payload string
}

// Backend abstracts compositor queries and the change-notification stream.
// Query methods may fail transiently (compositor busy or restarting); callers
// treat that as "no data this cycle".
type Backend interface {
	Name() string
	CursorPosition() (Point, error)
	Monitors() ([]Monitor, error)
	OpenWindows() (int, error)
	SubscribeChanges(ctx context.Context) (<-chan ChangeEvent, error)
	Close()
}
