package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listCategory string
	listJSON     bool
)

func init() {
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category name")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List manifest entries",
	Long:  `List every manifest entry with its category, status, and inclusion condition.`,
	RunE:  runList,
}

// listEntry represents one manifest entry for display.
type listEntry struct {
	Category string `json:"category"`
	ID       string `json:"id"`
	Status   string `json:"status"`
	When     string `json:"when,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		return err
	}

	var entries []listEntry
	for _, e := range m.Entries() {
		if listCategory != "" && e.Category != listCategory {
			continue
		}
		status := "enabled"
		if e.Disabled {
			status = "disabled"
		} else if e.When != "" {
			status = "conditional"
		}
		entries = append(entries, listEntry{
			Category: e.Category,
			ID:       e.ID,
			Status:   status,
			When:     e.When,
		})
	}

	if len(entries) == 0 {
		if listCategory != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No entries in category %q\n", listCategory)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Manifest has no entries.")
		}
		return nil
	}

	if listJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling entries: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tGUIDE\tSTATUS\tWHEN")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Category, e.ID, e.Status, e.When)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%d entries (%d disabled)\n", m.EntryCount(), m.DisabledCount())
	return nil
}
