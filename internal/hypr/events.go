package hypr

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
)

// Event is one notification from the Hyprland event socket.
// The wire format is one "KIND>>PAYLOAD" line per event.
type Event struct {
	Kind    string
	Payload string
}

// ParseEventLine splits a raw event line into kind and payload.
// Lines without the ">>" separator are reported as kind-only events.
func ParseEventLine(line string) Event {
	kind, payload, found := strings.Cut(line, ">>")
	if !found {
		return Event{Kind: strings.TrimSpace(line)}
	}
	return Event{Kind: kind, Payload: payload}
}

// Subscribe connects to the event socket and streams events until the context
// is cancelled or the connection drops. The returned channel is closed when
// the stream ends.
func Subscribe(ctx context.Context) (<-chan Event, error) {
	socketPath, err := EventSocketPath()
	if err != nil {
		return nil, err
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Hyprland event socket: %w", err)
	}

	events := make(chan Event)

	// Unblock the scanner below when the caller goes away.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(events)
		defer conn.Close()

		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			select {
			case events <- ParseEventLine(line):
			case <-ctx.Done():
				return
			}
		}
	}()

	return events, nil
}
