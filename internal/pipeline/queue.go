// Package pipeline implements the concurrent ingestion core: a bounded work
// queue, the single persistence writer, a throughput monitor, and the
// orchestration that ties them together for one run.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

// Queue is a bounded FIFO of entries with acknowledgment tracking. Put
// blocks while the queue is at capacity; fullness is backpressure, not an
// error. Join waits until every accepted entry has been acknowledged.
type Queue struct {
	ch chan *catalog.Entry

	mu      sync.Mutex
	unacked int
	waiters []chan struct{}
}

// NewQueue constructs a queue with the provided capacity.
func NewQueue(capacity int) *Queue {
	return &Queue{
		ch: make(chan *catalog.Entry, capacity),
	}
}

// Put appends an entry, blocking under backpressure until a slot frees up
// or the context ends.
func (q *Queue) Put(ctx context.Context, entry *catalog.Entry) error {
	select {
	case q.ch <- entry:
		q.mu.Lock()
		q.unacked++
		q.mu.Unlock()
		return nil
	case <-ctx.Done():
		return fmt.Errorf("put canceled: %w", ctx.Err())
	}
}

// Get returns the next entry in FIFO order, or ok=false once timeout
// elapses with nothing available. An empty queue is not an error; consumers
// poll so they can re-check their stop condition.
func (q *Queue) Get(timeout time.Duration) (*catalog.Entry, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case entry := <-q.ch:
		return entry, true
	case <-timer.C:
		return nil, false
	}
}

// Ack marks one previously dequeued entry as fully processed.
func (q *Queue) Ack() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.unacked--
	if q.unacked <= 0 {
		for _, ch := range q.waiters {
			close(ch)
		}
		q.waiters = nil
	}
}

// Join blocks until every accepted entry has been acknowledged, or the
// context ends (so a dead consumer cannot hang the caller forever).
func (q *Queue) Join(ctx context.Context) error {
	q.mu.Lock()
	if q.unacked == 0 {
		q.mu.Unlock()
		return nil
	}
	drained := make(chan struct{})
	q.waiters = append(q.waiters, drained)
	q.mu.Unlock()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("join canceled: %w", ctx.Err())
	}
}

// Depth is the count of accepted-but-unacknowledged entries. Observability
// only; correctness never depends on it.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.unacked
}

// Len is the number of entries currently buffered and not yet dequeued.
func (q *Queue) Len() int {
	return len(q.ch)
}
