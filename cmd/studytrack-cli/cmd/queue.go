package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var queueLimit int

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "List pending documents in study order",
	Long: `List every document not yet completed, sorted by name, with its
subject, table type and the days left until that subject's class.

Examples:
  studytrack-cli queue
  studytrack-cli queue -n 5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := GetRuntime(context.Background())
		if err != nil {
			return err
		}

		q := r.Session.Queue()
		if q.Len() == 0 {
			fmt.Println("No pending documents")
			return nil
		}

		now := time.Now()
		for i, d := range q {
			if queueLimit > 0 && i >= queueLimit {
				fmt.Printf("... %d more\n", q.Len()-i)
				break
			}
			line := fmt.Sprintf("%3d  %s", i+1, d.RelativePath)
			if d.Subject != "" {
				line += fmt.Sprintf("  [%s %s]", d.Subject, d.TableType)
			}
			if days := r.Session.DaysUntil(d, now); days > 0 {
				line += fmt.Sprintf("  %dd", days)
			}
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	queueCmd.Flags().IntVarP(&queueLimit, "limit", "n", 0, "show at most n documents")
	rootCmd.AddCommand(queueCmd)
}
