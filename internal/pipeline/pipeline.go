package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gamedex/catalog-crawler/internal/catalog"
	"github.com/gamedex/catalog-crawler/internal/database"
	"github.com/gamedex/catalog-crawler/internal/metrics"
)

// DefaultQueueCapacity bounds the work queue when no capacity is configured.
const DefaultQueueCapacity = 2000

// Config controls Pipeline behavior.
type Config struct {
	QueueCapacity int
}

// Pipeline drives one end-to-end ingestion run: producer, writer and
// monitor wired through the bounded queue and shared counters.
type Pipeline struct {
	registry *catalog.Registry
	store    database.Store
	clock    Clock
	logger   *zap.Logger
	cfg      Config

	counters *Counters
}

// New constructs a Pipeline.
func New(registry *catalog.Registry, store database.Store, clock Clock, cfg Config, logger *zap.Logger) *Pipeline {
	if cfg.QueueCapacity <= 0 {
		cfg.QueueCapacity = DefaultQueueCapacity
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Pipeline{
		registry: registry,
		store:    store,
		clock:    clock,
		logger:   logger,
		cfg:      cfg,
		counters: NewCounters(),
	}
}

// Counters exposes the run totals for observers (the status server).
func (p *Pipeline) Counters() *Counters {
	return p.counters
}

// Run processes every configured source in order, persisting the resulting
// entries through the single writer. It validates all capability names
// before any side effects, and returns the first unrecovered producer or
// writer error after the drain/stop/join shutdown sequence.
func (p *Pipeline) Run(ctx context.Context, sources catalog.SourceSet, useCached bool) error {
	if err := p.registry.Validate(sources); err != nil {
		return err
	}

	p.counters.Reset()
	queue := NewQueue(p.cfg.QueueCapacity)
	writer := NewWriter(p.store, queue, p.counters, p.clock, p.logger)
	monitor := NewMonitor(p.counters, queue, p.clock, p.logger)

	// The writer runs under the group so a persistence failure cancels the
	// group context, unblocking a producer stuck on a full queue.
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return writer.Run(groupCtx)
	})

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	var monitorDone sync.WaitGroup
	monitorDone.Add(1)
	go func() {
		defer monitorDone.Done()
		monitor.Run(monitorCtx)
	}()

	produceErr := p.produce(groupCtx, sources, useCached, queue)

	// Shutdown runs regardless of producer outcome: wait for full drain,
	// signal stop, join the writer, then the monitor.
	joinErr := queue.Join(groupCtx)
	writer.RequestStop()
	writeErr := group.Wait()
	stopMonitor()
	monitorDone.Wait()

	enqueued, written := p.counters.Snapshot()
	if writeErr != nil {
		metrics.ObserveRun("writer_error")
		return fmt.Errorf("writer: %w", writeErr)
	}
	if produceErr != nil {
		metrics.ObserveRun("producer_error")
		return produceErr
	}
	if joinErr != nil {
		metrics.ObserveRun("error")
		return joinErr
	}

	metrics.ObserveRun("ok")
	p.logger.Info("run complete",
		zap.Uint64("enqueued", enqueued),
		zap.Uint64("written", written),
	)
	return nil
}

// produce iterates platforms and sources in configured order, threading
// each scraper's stream through its parser chain and enqueuing the results.
// Sources are processed strictly one at a time, so per-source entry order
// is preserved end to end.
func (p *Pipeline) produce(ctx context.Context, sources catalog.SourceSet, useCached bool, queue *Queue) error {
	for _, ps := range sources.Platforms {
		p.logger.Info("processing platform", zap.String("platform", ps.Platform))

		for i, src := range ps.Sources {
			p.logger.Info("processing source",
				zap.Int("index", i+1),
				zap.String("format", src.Format),
				zap.String("regions", strings.Join(src.Regions, ", ")),
				zap.String("scraper", src.Scraper),
				zap.String("type", src.Type),
			)

			scraper, _ := p.registry.Scraper(src.Scraper)
			entries := scraper.Scrape(ctx, src, ps.Platform, useCached)

			for _, spec := range src.Parsers {
				p.logger.Info("applying parser", zap.String("parser", spec.Name))
				parser, _ := p.registry.Parser(spec.Name)
				entries = parser.Parse(entries, spec.Flags)
			}

			for entry := range entries {
				if err := queue.Put(ctx, entry); err != nil {
					return fmt.Errorf("enqueue entry: %w", err)
				}
				// Incremented only after the queue accepted the entry, so
				// the enqueued total never runs ahead of reality.
				p.counters.IncEnqueued()
				metrics.ObserveEnqueued()
			}
		}
	}
	return nil
}
