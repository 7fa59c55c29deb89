// Package dispatch provides a handler registry with a queuing fallback:
// values dispatched before a handler is bound are held in order and
// flushed as soon as one attaches.
package dispatch

import (
	"sync"
)

// DefaultBacklog is the number of queued values kept while no handler is bound.
const DefaultBacklog = 64

// Queue delivers values to a single bound handler. While no handler is
// bound, dispatched values accumulate in a bounded backlog; once the
// backlog is full the oldest value is dropped. Bind flushes the backlog
// in dispatch order before accepting new values.
type Queue[T any] struct {
	mu       sync.Mutex
	handler  func(T)
	flushing bool
	backlog  []T
	limit    int
}

// NewQueue creates an unbound queue with the given backlog limit.
// A limit <= 0 falls back to DefaultBacklog.
func NewQueue[T any](limit int) *Queue[T] {
	if limit <= 0 {
		limit = DefaultBacklog
	}
	return &Queue[T]{limit: limit}
}

// Bind attaches the handler and synchronously flushes any queued values in
// the order they were dispatched. Values dispatched while the flush is in
// flight join the backlog and are drained by it, so nothing overtakes an
// older queued value. A nil handler detaches (same as Unbind).
func (q *Queue[T]) Bind(handler func(T)) {
	q.mu.Lock()
	q.handler = handler
	if handler == nil {
		q.mu.Unlock()
		return
	}
	q.flushing = true
	q.mu.Unlock()

	for {
		q.mu.Lock()
		if q.handler == nil || len(q.backlog) == 0 {
			q.flushing = false
			q.mu.Unlock()
			return
		}
		v := q.backlog[0]
		q.backlog = q.backlog[1:]
		q.mu.Unlock()
		handler(v)
	}
}

// Unbind detaches the current handler. Subsequent dispatches queue again.
func (q *Queue[T]) Unbind() {
	q.Bind(nil)
}

// Dispatch delivers v to the bound handler, or queues it when none is
// bound. Queued values beyond the backlog limit evict the oldest entry.
func (q *Queue[T]) Dispatch(v T) {
	q.mu.Lock()
	handler := q.handler
	if handler == nil || q.flushing {
		if len(q.backlog) >= q.limit {
			q.backlog = q.backlog[1:]
		}
		q.backlog = append(q.backlog, v)
		q.mu.Unlock()
		return
	}
	q.mu.Unlock()
	handler(v)
}

// Pending reports the number of queued values awaiting a handler.
func (q *Queue[T]) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.backlog)
}
