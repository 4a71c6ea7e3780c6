// Package main hosts the catalog crawler entrypoint.
//
// Architecture overview:
//   - Pipeline: internal/pipeline runs one producer over the configured
//     sources, a bounded in-memory work queue, a single database writer,
//     and a throughput monitor. Context cancellation propagates from the
//     signal handler through errgroup into every stage.
//   - Scrapers & parsers: internal/scraper fetches source indexes (Colly
//     with an on-disk response cache) and internal/parser chains normalize
//     titles, regions, serials, and box art. Both are looked up by name
//     from the registry built in internal/app.
//   - Persistence: entries are written one at a time by the sole writer
//     goroutine through internal/database (pgx). Generated artifacts such
//     as PS3 RAP files land in the local blob store.
//   - Configuration & plumbing: Viper populates config from file and env
//     (CATALOG_ prefix); zap provides structured logging; Prometheus
//     metrics and live counters are exposed by the optional status server.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gamedex/catalog-crawler/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Execute(ctx)
}
