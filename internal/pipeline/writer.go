package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/database"
	"github.com/gamedex/catalog-crawler/internal/metrics"
)

const (
	writerPollInterval   = 500 * time.Millisecond
	writerReportInterval = 2 * time.Second
)

// Writer is the sole consumer of the work queue. It owns the one
// persistence connection and serializes every insert.
type Writer struct {
	store    database.Store
	queue    *Queue
	counters *Counters
	clock    Clock
	logger   *zap.Logger

	stop atomic.Bool
}

// NewWriter constructs a Writer.
func NewWriter(store database.Store, queue *Queue, counters *Counters, clock Clock, logger *zap.Logger) *Writer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Writer{
		store:    store,
		queue:    queue,
		counters: counters,
		clock:    clock,
		logger:   logger,
	}
}

// RequestStop asks the writer to exit once the queue is empty. The stop is
// cooperative: an in-flight insert is never interrupted.
func (w *Writer) RequestStop() {
	w.stop.Store(true)
}

// Run drains the queue until stop is requested and the queue is empty.
// The store is initialized on entry and closed on every exit path,
// including persistence failures, which propagate to the caller untried.
func (w *Writer) Run(ctx context.Context) (err error) {
	if initErr := w.store.Init(ctx); initErr != nil {
		return fmt.Errorf("init store: %w", initErr)
	}
	defer func() {
		// Close with a fresh context: the run context is already canceled
		// on the error paths that matter most.
		if closeErr := w.store.Close(context.Background()); closeErr != nil && err == nil {
			err = fmt.Errorf("close store: %w", closeErr)
		}
		w.logger.Info("[DB] database closed")
	}()

	lastReport := w.clock.Now()
	for {
		if w.stop.Load() && w.queue.Len() == 0 {
			return nil
		}

		entry, ok := w.queue.Get(writerPollInterval)
		if !ok {
			if ctx.Err() != nil {
				return fmt.Errorf("writer canceled: %w", ctx.Err())
			}
			continue
		}

		start := w.clock.Now()
		if insertErr := w.store.InsertEntry(ctx, entry); insertErr != nil {
			// The dequeued entry stays unacknowledged; the orchestrator's
			// queue join is context-aware and will not wait on it.
			return insertErr
		}
		w.counters.IncWritten()
		metrics.ObserveWritten(w.clock.Now().Sub(start))
		w.queue.Ack()

		if now := w.clock.Now(); now.Sub(lastReport) >= writerReportInterval {
			enqueued, written := w.counters.Snapshot()
			w.logger.Info("[DB]",
				zap.Uint64("written", written),
				zap.Int("queue", w.queue.Len()),
				zap.Uint64("backlog", enqueued-written),
			)
			lastReport = now
		}
	}
}
