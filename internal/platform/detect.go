package platform

import (
	"fmt"
	"os"
)

// Kind identifies a backend implementation.
type Kind string

const (
	KindAuto     Kind = "auto"
	KindHyprland Kind = "hyprland"
	KindX11      Kind = "x11"
)

// DetectKind picks a backend from the session environment: a Hyprland
// instance signature wins, otherwise an X11 display.
func DetectKind() (Kind, error) {
	if os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
		return KindHyprland, nil
	}
	if os.Getenv("DISPLAY") != "" {
		return KindX11, nil
	}
	return "", fmt.Errorf("no supported session found (neither HYPRLAND_INSTANCE_SIGNATURE nor DISPLAY is set)")
}

// New opens a backend of the given kind, autodetecting for KindAuto.
func New(kind Kind) (Backend, error) {
	if kind == "" || kind == KindAuto {
		detected, err := DetectKind()
		if err != nil {
			return nil, err
		}
		kind = detected
	}

	switch kind {
	case KindHyprland:
		return NewHyprlandBackend()
	case KindX11:
		return NewX11Backend()
	default:
		return nil, fmt.Errorf("unknown backend %q", kind)
	}
}
