package pipeline

import "sync"

// Counters tracks run totals. Both fields are monotonically non-decreasing
// for the lifetime of one run and guarded by a single mutex so snapshots
// are never torn.
type Counters struct {
	mu       sync.Mutex
	enqueued uint64
	written  uint64
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{}
}

// IncEnqueued records one entry accepted onto the queue.
func (c *Counters) IncEnqueued() {
	c.mu.Lock()
	c.enqueued++
	c.mu.Unlock()
}

// IncWritten records one entry persisted by the writer.
func (c *Counters) IncWritten() {
	c.mu.Lock()
	c.written++
	c.mu.Unlock()
}

// Snapshot returns both totals read in one critical section.
func (c *Counters) Snapshot() (enqueued, written uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.enqueued, c.written
}

// Reset zeroes both totals at the start of a run.
func (c *Counters) Reset() {
	c.mu.Lock()
	c.enqueued = 0
	c.written = 0
	c.mu.Unlock()
}
