package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studytrack/internal/application"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the study folder tree",
	Long: `Display the folder tree as studytrack sees it: reserved "system"
folders are hidden and only PDFs and link files are listed.
Completed documents are marked with [x].

Example:
  studytrack-cli tree`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := GetRuntime(context.Background())
		if err != nil {
			return err
		}
		printTree(r.Session)
		return nil
	},
}

func printTree(s *application.Session) {
	s.Tree().Walk(func(e *application.DirectoryEntry, depth int) {
		indent := strings.Repeat("  ", depth)
		if !e.IsRoot() {
			fmt.Printf("%s%s/\n", indent[2:], e.Name)
		}
		for _, d := range e.Documents {
			mark := "[ ]"
			if s.Done(d.RelativePath) {
				mark = "[x]"
			}
			fmt.Printf("%s%s %s\n", indent, mark, d.Name)
		}
	})
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
