// Package cmd defines and implements the CLI commands for the
// catalogcrawler executable.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/app"
	"github.com/gamedex/catalog-crawler/internal/catalog"
	"github.com/gamedex/catalog-crawler/internal/fetch"
	"github.com/gamedex/catalog-crawler/internal/logging"
	"github.com/gamedex/catalog-crawler/internal/pipeline"
	"github.com/gamedex/catalog-crawler/pkg/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface that commands use, so tests can
// inject a mock.
type App interface {
	Close()
	GetLogger() *zap.Logger
	GetRegistry() *catalog.Registry
	GetFetcher() *fetch.Client
	GetPipeline() *pipeline.Pipeline
}

// newApp is the application factory. It is a variable so tests can
// replace it with a mock factory.
var newApp = func() (App, error) {
	return app.NewApp()
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogcrawler",
		Short: "A concurrent game-catalog ingestion pipeline.",
		Long: `catalogcrawler builds a game catalog database by scraping public
ROM archives, normalizing the results through configurable parser chains,
and persisting them through a bounded single-writer pipeline.`,

		// Runs after config is loaded but before the subcommand's RunE,
		// the right place to build and inject the application.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp()
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}

			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cobra.OnInitialize(config.InitConfig)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.catalog-crawler/config.yaml)")

	cmd.AddCommand(newMakeCmd())
	cmd.AddCommand(newCleanCmd())
	cmd.AddCommand(newDownloadGameTDBCmd())

	return cmd
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, fmt.Errorf("application services not initialized")
	}
	return appInstance, nil
}

// Execute is the main entry point. The context carries signal-driven
// cancellation down into the running pipeline.
func Execute(ctx context.Context) {
	logging.InitLogger()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logging.L.Fatal("Command execution failed", zap.Error(err))
	}
}
