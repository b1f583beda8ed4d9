package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"studytrack/internal/adapters/httpapi"
	"studytrack/internal/adapters/postgres"
	"studytrack/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the progress API in the foreground",
	Long: `Serve the progress API on LISTEN_ADDR and metrics on METRICS_ADDR,
backed by DATABASE_URL. Without a database the API still answers,
reporting that it is not configured.

Example:
  studytrack-cli serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, configured := cfg.Database()
		if !configured {
			logging.Warn("DATABASE_URL not set, serving without a database")
		}
		store, err := postgres.Open(db.URL, configured)
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return httpapi.Run(ctx, store, cfg.ListenAddr, cfg.MetricsAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
