package hypr

import (
	"fmt"
	"os"
	"path/filepath"
)

// SocketDir resolves the directory holding a Hyprland instance's IPC sockets.
// Hyprland >= 0.40 puts them under $XDG_RUNTIME_DIR/hypr/<signature>; older
// releases used /tmp/hypr/<signature>. Requires HYPRLAND_INSTANCE_SIGNATURE.
func SocketDir() (string, error) {
	sig := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if sig == "" {
		return "", fmt.Errorf("HYPRLAND_INSTANCE_SIGNATURE is not set (not running under Hyprland?)")
	}

	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		dir := filepath.Join(runtimeDir, "hypr", sig)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}

	dir := filepath.Join("/tmp", "hypr", sig)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, nil
	}

	return "", fmt.Errorf("no socket directory found for Hyprland instance %q", sig)
}

// RequestSocketPath returns the path of the request/reply socket (.socket.sock).
func RequestSocketPath() (string, error) {
	dir, err := SocketDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".socket.sock"), nil
}

// EventSocketPath returns the path of the event stream socket (.socket2.sock).
func EventSocketPath() (string, error) {
	dir, err := SocketDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ".socket2.sock"), nil
}
