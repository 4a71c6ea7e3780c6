// Package app initializes and holds long-lived application services,
// acting as a dependency injection container.
package app

import (
	"fmt"
	"net/http"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/api"
	"github.com/gamedex/catalog-crawler/internal/cache"
	"github.com/gamedex/catalog-crawler/internal/catalog"
	"github.com/gamedex/catalog-crawler/internal/database"
	"github.com/gamedex/catalog-crawler/internal/fetch"
	"github.com/gamedex/catalog-crawler/internal/logging"
	"github.com/gamedex/catalog-crawler/internal/metrics"
	"github.com/gamedex/catalog-crawler/internal/parser/gametdb"
	"github.com/gamedex/catalog-crawler/internal/parser/ghostware"
	"github.com/gamedex/catalog-crawler/internal/parser/libretro"
	"github.com/gamedex/catalog-crawler/internal/parser/mame"
	"github.com/gamedex/catalog-crawler/internal/parser/nointro"
	"github.com/gamedex/catalog-crawler/internal/pipeline"
	"github.com/gamedex/catalog-crawler/internal/scraper/internetarchive"
	"github.com/gamedex/catalog-crawler/internal/scraper/mariocube"
	"github.com/gamedex/catalog-crawler/internal/scraper/myrient"
	"github.com/gamedex/catalog-crawler/internal/scraper/nopaystation"
	"github.com/gamedex/catalog-crawler/internal/storage"
	"github.com/gamedex/catalog-crawler/internal/storage/local"
)

// App holds all the shared, long-lived services for the application.
// It is initialized once at startup and handed to the commands that need it.
type App struct {
	logger   *zap.Logger
	store    database.Store
	fetcher  *fetch.Client
	registry *catalog.Registry
	pipe     *pipeline.Pipeline
}

// GetLogger returns the shared zap logger instance.
func (a *App) GetLogger() *zap.Logger {
	return a.logger
}

// GetRegistry exposes the scraper and parser registry.
func (a *App) GetRegistry() *catalog.Registry {
	return a.registry
}

// GetFetcher exposes the shared fetch client.
func (a *App) GetFetcher() *fetch.Client {
	return a.fetcher
}

// GetPipeline returns the ingestion pipeline.
func (a *App) GetPipeline() *pipeline.Pipeline {
	return a.pipe
}

// Close releases application services. The database connection is owned
// by the pipeline writer, so there is nothing further to tear down.
func (a *App) Close() {
	_ = a.logger.Sync()
}

// NewApp creates and initializes a new App from the loaded configuration.
// It is the central point for service initialization and fails fast if any
// critical service cannot be constructed.
func NewApp() (*App, error) {
	l := logging.L
	l.Info("Initializing application services...")

	metrics.Init()

	responseCache, err := cache.New(viper.GetString("fetch.cache_dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize response cache: %w", err)
	}

	fetcher := fetch.New(fetch.Config{
		UserAgent: viper.GetString("fetch.user_agent"),
		Timeout:   viper.GetDuration("fetch.timeout"),
	}, responseCache, l)

	var blobs storage.Provider = &storage.NoOpProvider{}
	if dir := viper.GetString("data.static_dir"); dir != "" {
		store, err := local.New(local.Config{BaseDir: dir})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize blob store: %w", err)
		}
		blobs = store
	}

	var store database.Store
	if viper.GetBool("database.enabled") {
		dsn := viper.GetString("database.dsn")
		if dsn == "" {
			return nil, fmt.Errorf("database is enabled but database.dsn is not set")
		}
		l.Info("Using PostgreSQL store")
		store = database.NewPostgresStore(dsn, l)
	} else {
		l.Info("Using No-Op store. Entries will be discarded.")
		store = &database.NoOpStore{}
	}

	registry := buildRegistry(fetcher, blobs, l)

	pipe := pipeline.New(registry, store, pipeline.SystemClock{}, pipeline.Config{
		QueueCapacity: viper.GetInt("pipeline.queue_capacity"),
	}, l)

	if viper.GetBool("server.enabled") {
		addr := viper.GetString("server.addr")
		srv := api.NewServer(pipelineStats{pipe}, l)
		go func() {
			l.Info("Starting status server", zap.String("addr", addr))
			if err := http.ListenAndServe(addr, srv.Handler()); err != nil {
				l.Error("Status server failed", zap.Error(err))
			}
		}()
	}

	l.Info("Application services initialized successfully.")
	return &App{
		logger:   l,
		store:    store,
		fetcher:  fetcher,
		registry: registry,
		pipe:     pipe,
	}, nil
}

// buildRegistry registers every scraper and parser the source config can
// name.
func buildRegistry(fetcher *fetch.Client, blobs storage.Provider, l *zap.Logger) *catalog.Registry {
	r := catalog.NewRegistry()

	r.RegisterScraper("myrient", myrient.New(fetcher, l))
	r.RegisterScraper("internet_archive", internetarchive.New(fetcher, l))
	r.RegisterScraper("mariocube", mariocube.New(fetcher, l))
	r.RegisterScraper("nopaystation", nopaystation.New(fetcher, blobs, l))

	r.RegisterParser("no_intro", nointro.New(l))
	r.RegisterParser("wii_rom_set_by_ghostware", ghostware.New(l))
	r.RegisterParser("mame", mame.New(viper.GetString("data.mame_dir"), l))
	r.RegisterParser("libretro", libretro.New(viper.GetString("data.libretro_dir"), fetcher, l))
	r.RegisterParser("gametdb", gametdb.New(
		viper.GetString("data.gametdb_dir"),
		viper.GetString("fetch.cache_dir"),
		l,
	))

	return r
}

// pipelineStats adapts the pipeline counters to the status server.
type pipelineStats struct {
	pipe *pipeline.Pipeline
}

func (p pipelineStats) Stats() api.Stats {
	enqueued, written := p.pipe.Counters().Snapshot()
	return api.Stats{
		Enqueued:   enqueued,
		Written:    written,
		QueueDepth: int(enqueued) - int(written),
	}
}
