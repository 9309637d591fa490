package platform

import (
	"context"
	"fmt"

	"github.com/hyprshy/hyprshy/internal/x11"
)

// X11Backend serves queries over an X11 connection. It lets the same daemon
// drive bars like polybar under plain X11 window managers.
type X11Backend struct {
	conn *x11.Connection
}

var _ Backend = (*X11Backend)(nil)

// NewX11Backend opens a fresh X11 connection.
func NewX11Backend() (*X11Backend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &X11Backend{conn: conn}, nil
}

func (b *X11Backend) Name() string { return string(KindX11) }

func (b *X11Backend) CursorPosition() (Point, error) {
	x, y, err := b.conn.QueryPointer()
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y}, nil
}

func (b *X11Backend) Monitors() ([]Monitor, error) {
	raw, err := b.conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	monitors := make([]Monitor, 0, len(raw))
	for _, m := range raw {
		monitors = append(monitors, Monitor{
			ID:     m.ID,
			Name:   m.Name,
			X:      m.X,
			Y:      m.Y,
			Width:  m.Width,
			Height: m.Height,
		})
	}
	return monitors, nil
}

func (b *X11Backend) OpenWindows() (int, error) {
	return b.conn.CountOpenWindows()
}

func (b *X11Backend) SubscribeChanges(ctx context.Context) (<-chan ChangeEvent, error) {
	changes, err := b.conn.WatchProperties(ctx)
	if err != nil {
		return nil, err
	}

	events := make(chan ChangeEvent)
	go func() {
		defer close(events)
		for kind := range changes {
			select {
			case events <- ChangeEvent{Kind: kind}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

func (b *X11Backend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}
