package x11

import "testing"

func TestMonitorContains(t *testing.T) {
	left := Monitor{ID: 0, X: 0, Y: 0, Width: 1920, Height: 1080}
	right := Monitor{ID: 1, X: 1920, Y: 0, Width: 1920, Height: 1080}

	tests := []struct {
		name string
		m    Monitor
		x, y int
		want bool
	}{
		{"origin on left", left, 0, 0, true},
		{"left interior", left, 960, 540, true},
		{"right edge exclusive", left, 1920, 540, false},
		{"right monitor start", right, 1920, 540, true},
		{"right monitor interior", right, 1930, 5, true},
		{"below both", left, 500, 1080, false},
		{"negative coords", left, -1, 10, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
