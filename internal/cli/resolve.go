package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/guidekit-labs/guidekit/internal/detect"
	"github.com/guidekit-labs/guidekit/internal/facts"
	"github.com/guidekit-labs/guidekit/internal/resolver"
	"github.com/spf13/cobra"
)

var (
	resolveFactFlags []string
	resolveFactsFile string
	resolveTarget    string
	resolveJSON      bool
)

// resolveCache memoizes resolved sets for the process lifetime, the same way
// the server's handler does. Resolution always goes through a cache so both
// consumers share one code path.
var resolveCache = resolver.NewCache()

func init() {
	resolveCmd.Flags().StringArrayVar(&resolveFactFlags, "fact", nil, "Detection fact as name=bool (repeatable; bare name means true)")
	resolveCmd.Flags().StringVar(&resolveFactsFile, "facts-file", "", "JSON file with a {detector: bool} map")
	resolveCmd.Flags().StringVar(&resolveTarget, "target", "", "Codebase to scan for detection facts")
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the ordered guide set for a manifest and facts",
	Long: `Compute the exact ordered list of guide documents to load. Facts come from
--target scanning, a --facts-file, and --fact flags, merged in that order
(later sources win). The output order is the load order and is identical
across every consumer given the same manifest and facts.`,
	RunE: runResolve,
}

// gatherFacts merges facts from the scanner, the facts file, and the flag
// pairs. Flags win over the file, the file wins over the scan.
func gatherFacts() (facts.Facts, error) {
	merged := facts.Facts{}

	if resolveTarget != "" {
		scanned, err := detect.Run(resolveTarget)
		if err != nil {
			return nil, err
		}
		merged = facts.Merge(merged, scanned)
	}

	if resolveFactsFile != "" {
		data, err := os.ReadFile(resolveFactsFile)
		if err != nil {
			return nil, fmt.Errorf("reading facts file: %w", err)
		}
		var fromFile facts.Facts
		if err := json.Unmarshal(data, &fromFile); err != nil {
			return nil, fmt.Errorf("parsing facts file %s: %w", resolveFactsFile, err)
		}
		merged = facts.Merge(merged, fromFile)
	}

	fromFlags, err := facts.ParsePairs(resolveFactFlags)
	if err != nil {
		return nil, err
	}
	return facts.Merge(merged, fromFlags), nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}

	f, err := gatherFacts()
	if err != nil {
		return err
	}

	guides := resolveCache.Resolve(m, f)

	if resolveJSON {
		out, err := json.MarshalIndent(map[string]any{
			"checksum": m.Checksum,
			"facts":    f,
			"guides":   guides,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling resolve output: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	for _, g := range guides {
		fmt.Fprintln(cmd.OutOrStdout(), g)
	}
	return nil
}
