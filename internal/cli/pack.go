package cli

import (
	"fmt"
	"time"

	"github.com/guidekit-labs/guidekit/internal/pack"
	"github.com/spf13/cobra"
)

func init() {
	packCmd.AddCommand(packUpdateCmd)
	packCmd.AddCommand(packStatusCmd)
	rootCmd.AddCommand(packCmd)
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Manage the guides pack checkout",
	Long:  `Fetch and refresh the git repository that carries the manifest and guides.`,
}

var packUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Clone or update the guides pack",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := pack.DefaultDir()
		if err := pack.Update(dir); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Guides pack updated at %s\n", dir)
		return nil
	},
}

var packStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show pack location and freshness",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := pack.DefaultDir()
		if !pack.Exists(dir) {
			fmt.Fprintf(cmd.OutOrStdout(), "No pack checkout at %s. Run 'pack update'.\n", dir)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Pack: %s\n", dir)
		updated := pack.ReadFreshnessMarker(dir)
		if updated.IsZero() {
			fmt.Fprintln(cmd.OutOrStdout(), "Last updated: unknown")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Last updated: %s\n", updated.Format(time.RFC3339))
		}
		if pack.IsStale(dir, pack.DefaultMaxAge) {
			fmt.Fprintln(cmd.OutOrStdout(), "Status: stale (older than 7 days)")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Status: fresh")
		}
		return nil
	},
}
