// Package event provides the queue that carries events from producer
// goroutines into the execution goroutine of a graph.
package event

import "sync"

// Queue is an unbounded many-producer, single-consumer FIFO. Push never
// blocks and never drops. Drain hands the accumulated events to the single
// consumer without blocking, in arrival order.
type Queue[E any] struct {
	mu      sync.Mutex
	pending []E
	spare   []E
}

// NewQueue returns an empty queue.
func NewQueue[E any]() *Queue[E] {
	return &Queue[E]{}
}

// Push appends an event. Safe for concurrent use by any number of
// goroutines.
func (q *Queue[E]) Push(e E) {
	q.mu.Lock()
	q.pending = append(q.pending, e)
	q.mu.Unlock()
}

// Drain removes and returns all queued events. The two backing buffers are
// swapped on every call, so a steady stream of drains allocates nothing. The
// returned slice is only valid until the next call to Drain and must not be
// retained across ticks.
func (q *Queue[E]) Drain() []E {
	q.mu.Lock()
	drained := q.pending
	q.pending = q.spare[:0]
	q.spare = drained
	q.mu.Unlock()
	return drained
}

// Len reports the number of currently queued events.
func (q *Queue[E]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
