package hypr

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSocketDir_RequiresInstanceSignature(t *testing.T) {
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", "")

	if _, err := SocketDir(); err == nil {
		t.Fatal("SocketDir() succeeded without HYPRLAND_INSTANCE_SIGNATURE")
	}
}

func TestSocketDir_PrefersXDGRuntimeDir(t *testing.T) {
	td := t.TempDir()
	sig := "abc123"
	if err := os.MkdirAll(filepath.Join(td, "hypr", sig), 0700); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_RUNTIME_DIR", td)
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", sig)

	got, err := SocketDir()
	if err != nil {
		t.Fatalf("SocketDir() error: %v", err)
	}
	want := filepath.Join(td, "hypr", sig)
	if got != want {
		t.Fatalf("SocketDir() = %q, want %q", got, want)
	}
}

func TestSocketPaths(t *testing.T) {
	td := t.TempDir()
	sig := "abc123"
	if err := os.MkdirAll(filepath.Join(td, "hypr", sig), 0700); err != nil {
		t.Fatal(err)
	}
	t.Setenv("XDG_RUNTIME_DIR", td)
	t.Setenv("HYPRLAND_INSTANCE_SIGNATURE", sig)

	req, err := RequestSocketPath()
	if err != nil {
		t.Fatalf("RequestSocketPath() error: %v", err)
	}
	if filepath.Base(req) != ".socket.sock" {
		t.Fatalf("RequestSocketPath() = %q, want .socket.sock basename", req)
	}

	ev, err := EventSocketPath()
	if err != nil {
		t.Fatalf("EventSocketPath() error: %v", err)
	}
	if filepath.Base(ev) != ".socket2.sock" {
		t.Fatalf("EventSocketPath() = %q, want .socket2.sock basename", ev)
	}
}

func TestParseEventLine(t *testing.T) {
	tests := []struct {
		line string
		want Event
	}{
		{"openwindow>>80e62df0,2,kitty,kitty", Event{Kind: "openwindow", Payload: "80e62df0,2,kitty,kitty"}},
		{"closewindow>>80e62df0", Event{Kind: "closewindow", Payload: "80e62df0"}},
		{"workspace>>3", Event{Kind: "workspace", Payload: "3"}},
		{"configreloaded", Event{Kind: "configreloaded"}},
		{"activewindow>>kitty,~", Event{Kind: "activewindow", Payload: "kitty,~"}},
	}

	for _, tt := range tests {
		got := ParseEventLine(tt.line)
		if got != tt.want {
			t.Errorf("ParseEventLine(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestCursorPosParsing(t *testing.T) {
	var pos CursorPos
	if err := json.Unmarshal([]byte(`{"x":1930,"y":5}`), &pos); err != nil {
		t.Fatalf("unmarshal cursorpos: %v", err)
	}
	if pos.X != 1930 || pos.Y != 5 {
		t.Fatalf("cursorpos = %+v, want {1930 5}", pos)
	}
}

func TestWorkspaceParsing(t *testing.T) {
	var ws Workspace
	raw := `{"id":2,"name":"2","monitor":"DP-1","windows":3,"hasfullscreen":false}`
	if err := json.Unmarshal([]byte(raw), &ws); err != nil {
		t.Fatalf("unmarshal activeworkspace: %v", err)
	}
	if ws.Windows != 3 {
		t.Fatalf("ws.Windows = %d, want 3", ws.Windows)
	}
}
