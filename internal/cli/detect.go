package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/guidekit-labs/guidekit/internal/detect"
	"github.com/spf13/cobra"
)

var (
	detectTarget string
	detectJSON   bool
)

func init() {
	detectCmd.Flags().StringVar(&detectTarget, "target", ".", "Codebase to scan")
	detectCmd.Flags().BoolVar(&detectJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(detectCmd)
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Scan a codebase for platform detection facts",
	Long: `Run the built-in detectors against a target codebase and print the
resulting facts map, the same map "resolve --target" feeds into
conditional manifest entries.`,
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	f, err := detect.Run(detectTarget)
	if err != nil {
		return err
	}

	if detectJSON {
		out, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling facts: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cmd.OutOrStdout(), "%s=%t\n", name, f[name])
	}
	return nil
}
