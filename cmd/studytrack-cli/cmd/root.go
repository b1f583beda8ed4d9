package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"studytrack/internal/adapters/progressclient"
	"studytrack/internal/bootstrap"
	"studytrack/internal/config"
	"studytrack/internal/logging"
)

var (
	folderPath string
	offline    bool

	cfg *config.Config
	rt  *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "studytrack-cli",
	Short: "CLI for the studytrack reading queue",
	Long: `studytrack-cli is a command-line interface to the same study folder,
completion state and progress API as the studytrack terminal UI.

It lists the folder tree and the pending queue, toggles documents,
restores completion history, and talks to the progress server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return logging.Init(logging.Config{
			Level:      cfg.LogLevel,
			Format:     "console",
			OutputPath: "stderr",
		})
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		logging.Sync()
		if rt == nil {
			return nil
		}
		err := rt.Close()
		rt = nil
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&folderPath, "folder", "f", "", "study folder (default: saved folder, then STUDYTRACK_FOLDER)")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "keep progress local, never call the progress API")
}

// GetRuntime opens the state store and reads the folder on first use
func GetRuntime(ctx context.Context) (*bootstrap.Runtime, error) {
	if rt != nil {
		return rt, nil
	}
	r, err := bootstrap.Open(cfg, bootstrap.Options{Folder: folderPath, Offline: offline})
	if err != nil {
		return nil, err
	}
	if _, err := r.Session.Ingest(ctx, r.Folder); err != nil {
		r.Close()
		return nil, err
	}
	if err := r.Session.Reconciler().Refresh(ctx); err != nil {
		logging.Debug("canonical subjects unavailable", zap.Error(err))
	}
	rt = r
	return rt, nil
}

// GetClient returns a client for the configured progress API
func GetClient() *progressclient.Client {
	return progressclient.New(cfg.APIURL)
}
