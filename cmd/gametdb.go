package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gamedex/catalog-crawler/internal/housekeeping"
)

// newDownloadGameTDBCmd creates the 'download-gametdb' subcommand, which
// refreshes the local GameTDB title databases.
func newDownloadGameTDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download-gametdb",
		Short: "Downloads and extracts the GameTDB title databases",

		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			destDir := viper.GetString("data.gametdb_dir")
			if err := housekeeping.DownloadGameTDB(destDir, appInstance.GetLogger()); err != nil {
				return fmt.Errorf("download GameTDB databases: %w", err)
			}
			return nil
		},
	}
}
