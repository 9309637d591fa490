package daemon

import (
	"testing"
	"time"
)

func TestEventQueue_ProducersNeverBlock(t *testing.T) {
	q := NewEventQueue()
	defer q.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Nobody is consuming; all pushes must still complete.
		for i := 0; i < 1000; i++ {
			q.Push() <- Event{Kind: EventCursorAtTop, Value: i%2 == 0}
		}
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("producer blocked on an unbounded queue")
	}
}

func TestEventQueue_PreservesFIFOOrder(t *testing.T) {
	q := NewEventQueue()

	want := []Event{
		{Kind: EventCursorAtTop, Value: true},
		{Kind: EventWindowsOpen, Value: true},
		{Kind: EventCursorAtTop, Value: false},
		{Kind: EventWindowsOpen, Value: false},
	}
	for _, ev := range want {
		q.Push() <- ev
	}
	q.Close()

	var got []Event
	for ev := range q.Pop() {
		got = append(got, ev)
	}

	if len(got) != len(want) {
		t.Fatalf("received %d events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEventQueue_CloseDrainsBacklog(t *testing.T) {
	q := NewEventQueue()

	const n = 64
	for i := 0; i < n; i++ {
		q.Push() <- Event{Kind: EventWindowsOpen, Value: true}
	}
	q.Close()

	count := 0
	for range q.Pop() {
		count++
	}
	if count != n {
		t.Fatalf("drained %d events, want %d", count, n)
	}
}
