package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gamedex/catalog-crawler/internal/housekeeping"
)

// newCleanCmd creates the 'clean' subcommand, which clears the working
// directories a crawl run leaves behind.
func newCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Removes cache, data, and static directories",

		RunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			if err := housekeeping.Clean(".", appInstance.GetLogger()); err != nil {
				return fmt.Errorf("clean working directories: %w", err)
			}
			return nil
		},
	}
}
