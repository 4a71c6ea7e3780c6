package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gamedex/catalog-crawler/internal/catalog"
	"github.com/gamedex/catalog-crawler/internal/housekeeping"
)

// newMakeCmd creates and configures the 'make' subcommand, which runs a
// full catalog ingestion pass.
func newMakeCmd() *cobra.Command {
	var useCached bool

	cmd := &cobra.Command{
		Use:   "make",
		Short: "Builds the catalog database",
		Long: `Scrapes every configured source, runs the entries through their
parser chains, and persists them to the database. Platforms and sources
are processed in the order the source configuration lists them.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMakeCommand(cmd, useCached)
		},
	}

	cmd.Flags().BoolVar(&useCached, "use-cached", false,
		"serve previously fetched pages from the response cache")
	return cmd
}

func runMakeCommand(cmd *cobra.Command, useCached bool) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.GetLogger()

	sourcesPath := viper.GetString("pipeline.sources_path")
	sources, err := catalog.LoadSources(sourcesPath)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}
	logger.Info("Loaded source configuration",
		zap.String("path", sourcesPath),
		zap.Int("platforms", len(sources.Platforms)))

	if err := appInstance.GetPipeline().Run(cmd.Context(), sources, useCached); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Run interrupted", zap.Error(err))
			return nil
		}
		return fmt.Errorf("run pipeline: %w", err)
	}

	if dest := viper.GetString("data.static_files_dir_path"); dest != "" {
		staticDir := viper.GetString("data.static_dir")
		if err := housekeeping.MoveStatic(staticDir, dest, logger); err != nil {
			return fmt.Errorf("move static files: %w", err)
		}
		logger.Info("Static files moved", zap.String("dest", dest))
	}

	logger.Info("Make command finished.")
	return nil
}
