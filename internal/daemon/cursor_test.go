package daemon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hyprshy/hyprshy/internal/platform"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeGeometry struct {
	pos      platform.Point
	posErr   error
	monitors []platform.Monitor
	monErr   error
}

func (f *fakeGeometry) CursorPosition() (platform.Point, error) {
	return f.pos, f.posErr
}

func (f *fakeGeometry) Monitors() ([]platform.Monitor, error) {
	return f.monitors, f.monErr
}

func newTestCursorWatcher(src *fakeGeometry, events chan Event) *CursorWatcher {
	return NewCursorWatcher(CursorWatcherConfig{
		PollInterval:   time.Millisecond,
		EnterThreshold: 3,
		ExitThreshold:  50,
		Logger:         testLogger(),
	}, src, events)
}

func drain(events chan Event) []Event {
	var got []Event
	for {
		select {
		case ev := <-events:
			got = append(got, ev)
		default:
			return got
		}
	}
}

func TestCursorWatcher_EdgeTriggeredWithHysteresis(t *testing.T) {
	src := &fakeGeometry{
		monitors: []platform.Monitor{{X: 0, Y: 0, Width: 1920, Height: 1080}},
	}
	events := make(chan Event, 16)
	w := newTestCursorWatcher(src, events)
	ctx := context.Background()

	// Away from the top: no event (initial state is already not-at-top).
	src.pos = platform.Point{X: 100, Y: 500}
	w.tick(ctx)
	if got := drain(events); len(got) != 0 {
		t.Fatalf("events at start = %v, want none", got)
	}

	// Exactly at the enter threshold flips to at-top.
	src.pos = platform.Point{X: 100, Y: 3}
	w.tick(ctx)
	got := drain(events)
	if len(got) != 1 || got[0] != (Event{Kind: EventCursorAtTop, Value: true}) {
		t.Fatalf("events = %v, want single CursorAtTop(true)", got)
	}

	// Inside the hysteresis band: still at-top, no flap.
	src.pos = platform.Point{X: 100, Y: 4}
	w.tick(ctx)
	if got := drain(events); len(got) != 0 {
		t.Fatalf("events inside hysteresis band = %v, want none", got)
	}

	// Repeating the same at-top sample stays silent (edge-triggered).
	src.pos = platform.Point{X: 100, Y: 0}
	w.tick(ctx)
	if got := drain(events); len(got) != 0 {
		t.Fatalf("repeated at-top sample emitted %v, want none", got)
	}

	// Past the exit threshold flips back.
	src.pos = platform.Point{X: 100, Y: 51}
	w.tick(ctx)
	got = drain(events)
	if len(got) != 1 || got[0] != (Event{Kind: EventCursorAtTop, Value: false}) {
		t.Fatalf("events = %v, want single CursorAtTop(false)", got)
	}
}

func TestCursorWatcher_MonitorLocalThreshold(t *testing.T) {
	src := &fakeGeometry{
		monitors: []platform.Monitor{
			{ID: 0, X: 0, Y: 0, Width: 1920, Height: 1080},
			{ID: 1, X: 1920, Y: 0, Width: 1920, Height: 1080},
		},
	}
	events := make(chan Event, 16)
	w := newTestCursorWatcher(src, events)

	// Cursor near the top of the second monitor is evaluated against that
	// monitor's own origin, not the first one's.
	src.pos = platform.Point{X: 1920 + 10, Y: 5}
	w.tick(context.Background())
	if got := drain(events); len(got) != 0 {
		t.Fatalf("y=5 with enter threshold 3 emitted %v, want none", got)
	}

	src.pos = platform.Point{X: 1920 + 10, Y: 2}
	w.tick(context.Background())
	got := drain(events)
	if len(got) != 1 || !got[0].Value {
		t.Fatalf("events = %v, want CursorAtTop(true) on second monitor", got)
	}
}

func TestCursorWatcher_VerticalStackLocalThreshold(t *testing.T) {
	src := &fakeGeometry{
		monitors: []platform.Monitor{
			{ID: 0, X: 0, Y: 0, Width: 1920, Height: 1080},
			{ID: 1, X: 0, Y: 1080, Width: 1920, Height: 1080},
		},
	}
	events := make(chan Event, 16)
	w := newTestCursorWatcher(src, events)

	// Global y=1081 is local y=1 on the lower monitor.
	src.pos = platform.Point{X: 500, Y: 1081}
	w.tick(context.Background())
	got := drain(events)
	if len(got) != 1 || !got[0].Value {
		t.Fatalf("events = %v, want CursorAtTop(true) on lower monitor", got)
	}
}

func TestCursorWatcher_SkipsTickOnFailure(t *testing.T) {
	src := &fakeGeometry{
		monitors: []platform.Monitor{{X: 0, Y: 0, Width: 1920, Height: 1080}},
	}
	events := make(chan Event, 16)
	w := newTestCursorWatcher(src, events)
	ctx := context.Background()

	// Source unavailable: silent skip, no state change.
	src.pos = platform.Point{X: 100, Y: 0}
	src.posErr = errors.New("compositor unavailable")
	w.tick(ctx)
	if got := drain(events); len(got) != 0 {
		t.Fatalf("events on source failure = %v, want none", got)
	}

	// Point outside all monitors: silent skip.
	src.posErr = nil
	src.pos = platform.Point{X: -5, Y: 0}
	w.tick(ctx)
	if got := drain(events); len(got) != 0 {
		t.Fatalf("events for point outside monitors = %v, want none", got)
	}

	// Recovery next tick.
	src.pos = platform.Point{X: 100, Y: 0}
	w.tick(ctx)
	if got := drain(events); len(got) != 1 || !got[0].Value {
		t.Fatalf("events after recovery = %v, want CursorAtTop(true)", got)
	}
}
