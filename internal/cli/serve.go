package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/guidekit-labs/guidekit/internal/manifest"
	"github.com/guidekit-labs/guidekit/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr  string
	serveWatch bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the manifest when the file changes")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the registry over HTTP",
	Long: `Run the registry as an HTTP service exposing resolve, validate, reload,
and manifest endpoints, plus /healthz and prometheus /metrics. The service
resolves through the same pure resolver the CLI uses.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	store := manifest.NewStore(manifestPath(), buildVersion)
	if _, err := store.Load(); err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:       serveAddr,
		Store:      store,
		GuidesRoot: guidesRoot(),
		Watch:      serveWatch,
		Logger:     server.NewLogger(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx)
}
