package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/guidekit-labs/guidekit/internal/manifest"
	"github.com/guidekit-labs/guidekit/internal/validate"
	"github.com/spf13/cobra"
)

var validateJSON bool

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Output the report in JSON format")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check manifest and guide store for drift",
	Long: `Verify that every enabled manifest entry resolves to a readable guide file
and that every guide file on disk is referenced by the manifest. All
problems are collected in one pass. Exits non-zero when the report contains
missing or duplicate records, so CI can gate on drift.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	m, err := loadManifest()
	if err != nil {
		// A duplicate identifier is still drift data for CI output.
		var dup *manifest.DuplicateEntryError
		if errors.As(err, &dup) {
			return printReport(cmd, validate.DuplicateReport(dup))
		}
		// Schema violations fail the load; spell out each issue for CI logs.
		var se *manifest.SchemaError
		if errors.As(err, &se) {
			for _, issue := range se.Issues {
				fmt.Fprintf(cmd.ErrOrStderr(), "schema: %s: %s\n", issue.Path, issue.Message)
			}
			return fmt.Errorf("manifest failed schema validation (%d issues)", len(se.Issues))
		}
		return err
	}

	return printReport(cmd, validate.Check(m, guidesRoot()))
}

func printReport(cmd *cobra.Command, report *validate.Report) error {
	if validateJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	} else {
		if len(report.Records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Manifest and guide store are in sync.")
		}
		for _, rec := range report.Records {
			switch rec.Kind {
			case validate.KindMissing:
				fmt.Fprintf(cmd.OutOrStdout(), "[MISS] %s (category %s): %s\n", rec.ID, rec.Category, rec.Detail)
			case validate.KindOrphaned:
				fmt.Fprintf(cmd.OutOrStdout(), "[WARN] %s: not referenced by the manifest\n", rec.ID)
			case validate.KindDuplicate:
				fmt.Fprintf(cmd.OutOrStdout(), "[DUP ] %s (category %s): %s\n", rec.ID, rec.Category, rec.Detail)
			}
		}
	}

	if report.Failed() {
		return fmt.Errorf("validation failed: %d missing, %d duplicate (%d orphan warnings)",
			report.Count(validate.KindMissing), report.Count(validate.KindDuplicate), report.Count(validate.KindOrphaned))
	}
	return nil
}
