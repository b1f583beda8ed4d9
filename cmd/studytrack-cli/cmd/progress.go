package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"studytrack/internal/application/commands"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List remote progress counters",
	Long: `List every progress row on the progress server: subject, table type
and completed/total documents.

Example:
  studytrack-cli subjects`,
	RunE: func(cmd *cobra.Command, args []string) error {
		listCmd := commands.NewListSubjectsCommand(GetClient())
		rows, err := listCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No progress rows")
			return nil
		}
		for _, r := range rows {
			fmt.Printf("%-20s %-9s %d/%d\n", r.SubjectName, r.TableType, r.CurrentProgress, r.TotalPDFs)
		}
		return nil
	},
}

var progressCmd = &cobra.Command{
	Use:   "progress <subject> <theory|practice> <delta>",
	Short: "Move a remote progress counter",
	Long: `Add delta to the counter of a subject and table type. The result is
clamped between 0 and the subject's total. Subject names are matched
ignoring case and accents.

Examples:
  studytrack-cli progress Álgebra theory 1
  studytrack-cli progress calculo practice -1`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		delta, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("delta must be an integer, got: %s", args[2])
		}

		deltaCmd := commands.NewApplyDeltaCommand(GetClient(), args[0], args[1], delta)
		row, err := deltaCmd.Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Printf("%s %s: %d/%d\n", row.SubjectName, row.TableType, row.CurrentProgress, row.TotalPDFs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(progressCmd)
}
