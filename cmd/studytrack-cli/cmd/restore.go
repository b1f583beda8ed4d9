package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studytrack/internal/application/commands"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Merge a completion history file",
	Long: `Merge a history file of the form {"completed": {"path": true}} into
the local completion state. Entries in the file win; nothing is removed.

Example:
  studytrack-cli restore ~/backup/check-history.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := GetRuntime(context.Background())
		if err != nil {
			return err
		}

		restoreCmd := commands.NewRestoreHistoryCommand(r.Session, args[0])
		result, err := restoreCmd.Execute()
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		fmt.Printf("%d entries, %d completed, %d pending\n", result.Entries, result.Done, r.Session.Queue().Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
}
