package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"studytrack/internal/application/commands"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <path>",
	Short: "Flip completion of a document",
	Long: `Mark a document completed, or pending again if it already was.
The change is saved locally first, then mirrored onto the progress
counter of its subject (unless --offline).

Example:
  studytrack-cli toggle Semana1/Algebra/tema1.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		r, err := GetRuntime(ctx)
		if err != nil {
			return err
		}

		toggleCmd := commands.NewToggleCommand(r.Session, args[0])
		result, err := toggleCmd.Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Println(result.Message)
		toast := result.Outcome.Toast()
		if toast.Error {
			return fmt.Errorf("%s: %w", toast.Text, result.Outcome.Err)
		}
		fmt.Println(toast.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}
