// Package sched provides the single-consumer FIFO work queue that defers
// and batches view invalidations.
//
// Enqueued work never runs inside the call that enqueued it: it executes
// later, in submission order, when the queue is drained. Draining happens
// either explicitly via Flush (used by tests and server-side rendering) or
// on a fixed tick via Run. Once enqueued, work always runs to completion;
// there is no cancellation and no timeout.
package sched

import (
	"context"
	"sync"
	"time"
)

// DefaultTick is the drain interval used when none is configured,
// roughly one frame at 60Hz.
const DefaultTick = 16 * time.Millisecond

// Queue is a single-consumer FIFO work queue.
type Queue struct {
	mu       sync.Mutex
	items    []func()
	draining bool
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Enqueue submits a unit of work. The work runs strictly after the call
// that enqueued it returns, in submission order.
func (q *Queue) Enqueue(work func()) {
	if work == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, work)
	q.mu.Unlock()
}

// Len returns the number of queued units of work.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Flush drains the queue in FIFO order until it is empty, including work
// enqueued by the drained work itself. A re-entrant Flush (called from
// inside drained work) is a no-op; the outer drain picks everything up.
func (q *Queue) Flush() {
	q.mu.Lock()
	if q.draining {
		q.mu.Unlock()
		return
	}
	q.draining = true
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.draining = false
		q.mu.Unlock()
	}()

	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.mu.Unlock()
			return
		}
		work := q.items[0]
		q.items = q.items[1:]
		q.mu.Unlock()

		work()
	}
}

// Run drains the queue once per tick until the context is cancelled.
// A tick of zero or less uses DefaultTick.
func (q *Queue) Run(ctx context.Context, tick time.Duration) {
	if tick <= 0 {
		tick = DefaultTick
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			q.Flush()
		}
	}
}
