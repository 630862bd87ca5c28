package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/guidekit-labs/guidekit/internal/branding"
	"github.com/guidekit-labs/guidekit/internal/config"
	"github.com/guidekit-labs/guidekit/internal/manifest"
	"github.com/guidekit-labs/guidekit/internal/pack"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	manifestFlag   string
	guidesRootFlag string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` resolves which accessibility guide documents to load from a single
authoritative manifest, so every consumer (this CLI or an embedded service)
loads the identical ordered set for the same manifest and detection facts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()

		// Staleness nudge, skipped for commands that manage the pack.
		name := cmd.Name()
		if name == "pack" || name == "update" || name == "status" {
			return
		}
		packDir := pack.DefaultDir()
		if pack.Exists(packDir) && pack.IsStale(packDir, pack.DefaultMaxAge) {
			fmt.Fprintf(os.Stderr, "Guides pack is more than 7 days old. Run '%s pack update'.\n", branding.CLIName())
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&manifestFlag, "manifest", "", "Path to the guides manifest (default from config)")
	rootCmd.PersistentFlags().StringVar(&guidesRootFlag, "guides-root", "", "Directory holding the guide documents (default from config)")
}

// manifestPath resolves the manifest location: flag, then config/env.
func manifestPath() string {
	if manifestFlag != "" {
		return manifestFlag
	}
	return config.ManifestPath()
}

// guidesRoot resolves the guide store location: flag, then config/env, then
// the manifest's directory.
func guidesRoot() string {
	if guidesRootFlag != "" {
		return guidesRootFlag
	}
	if v := config.Get(config.KeyGuidesRoot); v != "" {
		return v
	}
	if manifestFlag != "" {
		return filepath.Dir(manifestFlag)
	}
	return config.GuidesRoot()
}

// loadManifest loads the manifest for a one-shot command.
func loadManifest() (*manifest.Manifest, error) {
	store := manifest.NewStore(manifestPath(), buildVersion)
	m, err := store.Load()
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
