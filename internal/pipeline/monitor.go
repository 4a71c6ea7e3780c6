package pipeline

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/metrics"
)

const monitorInterval = 2 * time.Second

// Monitor periodically samples the counters and queue depth and reports
// throughput and backlog trend. It is strictly read-only; a missed sample
// is an observability gap, never a correctness bug.
type Monitor struct {
	counters *Counters
	queue    *Queue
	clock    Clock
	logger   *zap.Logger
	interval time.Duration
}

// NewMonitor constructs a Monitor.
func NewMonitor(counters *Counters, queue *Queue, clock Clock, logger *zap.Logger) *Monitor {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Monitor{
		counters: counters,
		queue:    queue,
		clock:    clock,
		logger:   logger,
		interval: monitorInterval,
	}
}

// Run samples every interval until the context ends.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	var lastEnqueued, lastWritten uint64
	lastTime := m.clock.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		enqueued, written := m.counters.Snapshot()
		depth := m.queue.Depth()
		metrics.SetQueueDepth(depth)

		now := m.clock.Now()
		dt := now.Sub(lastTime).Seconds()
		if dt < 0.001 {
			dt = 0.001
		}

		enqueueRate := float64(enqueued-lastEnqueued) / dt
		writeRate := float64(written-lastWritten) / dt
		backlog := int64(enqueued) - int64(written)
		backlogDelta := int64(enqueued-lastEnqueued) - int64(written-lastWritten)

		lastEnqueued = enqueued
		lastWritten = written
		lastTime = now

		// Idle suppression: nothing moved and nothing is waiting.
		if enqueueRate == 0 && writeRate == 0 && depth == 0 {
			continue
		}

		m.logger.Info("[STATS]",
			zap.Uint64("enq", enqueued),
			zap.Uint64("wr", written),
			zap.Int("queue", depth),
			zap.Int64("backlog", backlog),
			zap.String("trend", trendLabel(backlogDelta)),
			zap.Float64("enq_rate", enqueueRate),
			zap.Float64("wr_rate", writeRate),
		)
	}
}

func trendLabel(backlogDelta int64) string {
	switch {
	case backlogDelta > 0:
		return "growing"
	case backlogDelta < 0:
		return "draining"
	default:
		return "stable"
	}
}
