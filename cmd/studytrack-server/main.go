// studytrack-server exposes the progress counters and daily study time
// stored in PostgreSQL over HTTP.
//
// Features:
// - Prometheus metrics & structured logging (zap)
// - Runs without a database: reads answer with a warning, writes with 503
// - Graceful shutdown on SIGINT/SIGTERM
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studytrack/internal/adapters/httpapi"
	"studytrack/internal/adapters/postgres"
	"studytrack/internal/config"
	"studytrack/internal/logging"
)

var (
	listenAddr  string
	metricsAddr string
	initSchema  bool
)

var rootCmd = &cobra.Command{
	Use:   "studytrack-server",
	Short: "HTTP API for study progress counters",
	Long: `studytrack-server serves the progress API used by studytrack to mirror
completed documents onto per-subject counters.

Configuration comes from the environment (DATABASE_URL, LISTEN_ADDR,
METRICS_ADDR, LOG_LEVEL, LOG_FORMAT) or the studytrack config file.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		if !cmd.Flags().Changed("listen") {
			listenAddr = cfg.ListenAddr
		}
		if !cmd.Flags().Changed("metrics") {
			metricsAddr = cfg.MetricsAddr
		}

		if err := logging.Init(logging.Config{
			Level:  cfg.LogLevel,
			Format: cfg.LogFormat,
		}); err != nil {
			return fmt.Errorf("logging init error: %w", err)
		}
		defer logging.Sync()

		logging.Info("studytrack-server starting...",
			zap.String("listen", listenAddr),
			zap.String("metrics", metricsAddr))

		db, configured := cfg.Database()
		if !configured {
			logging.Warn("DATABASE_URL not set, serving without a database")
		}
		store, err := postgres.Open(db.URL, configured)
		if err != nil {
			logging.Fatal("database connection failed", zap.Error(err))
		}
		defer store.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if initSchema && store.Configured() {
			ids, err := store.Init(ctx)
			if err != nil {
				logging.Fatal("schema init failed", zap.Error(err))
			}
			logging.Info("progress table ready", zap.Ints("ids", ids))
		}

		return httpapi.Run(ctx, store, listenAddr, metricsAddr)
	},
}

func init() {
	rootCmd.Flags().StringVar(&listenAddr, "listen", ":8080", "API listen address (default from LISTEN_ADDR)")
	rootCmd.Flags().StringVar(&metricsAddr, "metrics", ":9090", "metrics listen address, empty to disable (default from METRICS_ADDR)")
	rootCmd.Flags().BoolVar(&initSchema, "init", false, "create and seed the progress table before serving")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
