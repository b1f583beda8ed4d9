package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studytrack/internal/adapters/postgres"
	"studytrack/internal/application"
	"studytrack/internal/application/commands"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the progress database",
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create and seed the progress table",
	Long: `Create the progress and daily_time tables if missing and upsert the
seed rows. Safe to run more than once.

Connects directly to DATABASE_URL; with --api the progress server
runs the init instead.

Examples:
  DATABASE_URL=postgres://... studytrack-cli db init
  studytrack-cli db init --api`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		var target commands.Initializer
		if viaAPI, _ := cmd.Flags().GetBool("api"); viaAPI {
			target = GetClient()
		} else {
			db, ok := cfg.Database()
			if !ok {
				return fmt.Errorf("DATABASE_URL: %w", application.ErrNotConfigured)
			}
			store, err := postgres.New(db.URL)
			if err != nil {
				return err
			}
			defer store.Close()
			target = store
		}

		ids, err := commands.NewInitProgressCommand(target).Execute(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Progress table ready (%d seed rows)\n", len(ids))
		return nil
	},
}

func init() {
	dbInitCmd.Flags().Bool("api", false, "run the init through the progress server")
	dbCmd.AddCommand(dbInitCmd)
	rootCmd.AddCommand(dbCmd)
}
