package daemon

// EventQueue is an unbounded multi-producer/single-consumer queue between the
// watchers and the reconciler. Producers never block on a slow consumer; a
// backlog only delays reconciliation, it never drops events. Per-producer FIFO
// order is preserved.
type EventQueue struct {
	in  chan Event
	out chan Event
}

// NewEventQueue creates the queue and starts its pump goroutine.
func NewEventQueue() *EventQueue {
	q := &EventQueue{
		in:  make(chan Event),
		out: make(chan Event),
	}
	go q.pump()
	return q
}

// Push returns the producer side of the queue.
func (q *EventQueue) Push() chan<- Event { return q.in }

// Pop returns the consumer side of the queue. It is closed after Close once
// the backlog has drained.
func (q *EventQueue) Pop() <-chan Event { return q.out }

// Close stops accepting events. Pending events are still delivered.
func (q *EventQueue) Close() { close(q.in) }

func (q *EventQueue) pump() {
	defer close(q.out)

	var backlog []Event
	for {
		if len(backlog) == 0 {
			ev, ok := <-q.in
			if !ok {
				return
			}
			backlog = append(backlog, ev)
		}

		select {
		case ev, ok := <-q.in:
			if !ok {
				for _, pending := range backlog {
					q.out <- pending
				}
				return
			}
			backlog = append(backlog, ev)
		case q.out <- backlog[0]:
			backlog = backlog[1:]
		}
	}
}
