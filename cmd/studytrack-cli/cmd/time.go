package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"studytrack/internal/application/commands"
)

var timeCmd = &cobra.Command{
	Use:   "time",
	Short: "Show today's study time",
	Long: `Show the seconds studied today, as recorded by the progress server.

Examples:
  studytrack-cli time
  studytrack-cli time add 1500`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTime(0)
	},
}

var timeAddCmd = &cobra.Command{
	Use:   "add <seconds>",
	Short: "Add seconds to today's study time",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		secs, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("seconds must be an integer, got: %s", args[0])
		}
		return runTime(secs)
	},
}

func runTime(add int) error {
	dailyCmd := commands.NewDailyTimeCommand(GetClient(), add)
	total, err := dailyCmd.Execute(context.Background())
	if err != nil {
		return err
	}
	fmt.Printf("%s (%d s)\n", time.Duration(total)*time.Second, total)
	return nil
}

func init() {
	timeCmd.AddCommand(timeAddCmd)
	rootCmd.AddCommand(timeCmd)
}
