package hypr

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"time"
)

// Client issues requests against a Hyprland instance's request socket.
// Each request opens a fresh connection; Hyprland closes the connection
// after writing its reply.
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient resolves the request socket for the current Hyprland instance.
func NewClient() (*Client, error) {
	socketPath, err := RequestSocketPath()
	if err != nil {
		return nil, err
	}
	return &Client{
		socketPath: socketPath,
		timeout:    2 * time.Second,
	}, nil
}

// CursorPos is the cursor position in desktop pixel coordinates.
type CursorPos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Monitor describes one display's placement in desktop space.
type Monitor struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Focused bool   `json:"focused"`
}

// Workspace is the subset of `activeworkspace` output we care about.
type Workspace struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Windows int    `json:"windows"`
}

// request sends a single j/-prefixed command and returns the raw JSON reply.
func (c *Client) request(command string) ([]byte, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Hyprland socket: %w", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	if _, err := conn.Write([]byte("j/" + command)); err != nil {
		return nil, fmt.Errorf("failed to send %q: %w", command, err)
	}

	reply, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read reply for %q: %w", command, err)
	}
	return reply, nil
}

// CursorPosition queries the current cursor position.
func (c *Client) CursorPosition() (CursorPos, error) {
	reply, err := c.request("cursorpos")
	if err != nil {
		return CursorPos{}, err
	}

	var pos CursorPos
	if err := json.Unmarshal(reply, &pos); err != nil {
		return CursorPos{}, fmt.Errorf("failed to parse cursorpos reply: %w", err)
	}
	return pos, nil
}

// Monitors queries all connected monitors.
func (c *Client) Monitors() ([]Monitor, error) {
	reply, err := c.request("monitors")
	if err != nil {
		return nil, err
	}

	var monitors []Monitor
	if err := json.Unmarshal(reply, &monitors); err != nil {
		return nil, fmt.Errorf("failed to parse monitors reply: %w", err)
	}
	return monitors, nil
}

// ActiveWorkspace queries the focused workspace, including its window count.
func (c *Client) ActiveWorkspace() (Workspace, error) {
	reply, err := c.request("activeworkspace")
	if err != nil {
		return Workspace{}, err
	}

	var ws Workspace
	if err := json.Unmarshal(reply, &ws); err != nil {
		return Workspace{}, fmt.Errorf("failed to parse activeworkspace reply: %w", err)
	}
	return ws, nil
}
