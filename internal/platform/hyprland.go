package platform

import (
	"context"
	"fmt"

	"github.com/hyprshy/hyprshy/internal/hypr"
)

// HyprlandBackend serves queries over the Hyprland request socket and the
// change stream over its event socket.
type HyprlandBackend struct {
	client *hypr.Client
}

var _ Backend = (*HyprlandBackend)(nil)

// NewHyprlandBackend resolves the IPC sockets of the current Hyprland instance.
func NewHyprlandBackend() (*HyprlandBackend, error) {
	client, err := hypr.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to set up Hyprland backend: %w", err)
	}
	return &HyprlandBackend{client: client}, nil
}

func (b *HyprlandBackend) Name() string { return string(KindHyprland) }

func (b *HyprlandBackend) CursorPosition() (Point, error) {
	pos, err := b.client.CursorPosition()
	if err != nil {
		return Point{}, err
	}
	return Point{X: pos.X, Y: pos.Y}, nil
}

func (b *HyprlandBackend) Monitors() ([]Monitor, error) {
	raw, err := b.client.Monitors()
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

// OpenWindows returns the window count of the focused workspace.
func (b *HyprlandBackend) OpenWindows() (int, error) {
	ws, err := b.client.ActiveWorkspace()
	if err != nil {
		return 0, err
	}
	return ws.Windows, nil
}

func (b *HyprlandBackend) SubscribeChanges(ctx context.Context) (<-chan ChangeEvent, error) {
	raw, err := hypr.Subscribe(ctx)
	if err != nil {
		return nil, err
	}

	events := make(chan ChangeEvent)
	go func() {
		defer close(events)
		for ev := range raw {
			select {
			case events <- ChangeEvent{Kind: ev.Kind, Payload: ev.Payload}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

// Close is a no-op; the request client opens a connection per request.
func (b *HyprlandBackend) Close() {}
