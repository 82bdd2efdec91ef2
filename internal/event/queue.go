// Package event provides the per-tick message queue used between game systems.
package event

// Queue is a single-consumer FIFO that is drained to empty once per tick.
// Nothing survives past the Drain call that read it.
type Queue[T any] struct {
	items []T
}

// NewQueue creates an empty queue.
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Send appends an event to the queue.
func (q *Queue[T]) Send(ev T) {
	q.items = append(q.items, ev)
}

// Drain returns every queued event in send order and empties the queue.
func (q *Queue[T]) Drain() []T {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// IsEmpty reports whether no events are queued.
func (q *Queue[T]) IsEmpty() bool {
	return len(q.items) == 0
}

// Clear drops all queued events.
func (q *Queue[T]) Clear() {
	q.items = nil
}
