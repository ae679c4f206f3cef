// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/search-runner/internal/terms"
)

var termsCmd = &cobra.Command{
	Use:   "terms <file>",
	Short: "Validate a term file and show what would run",
	Long: `Terms loads a term file exactly the way run does (trimming whitespace and
dropping blank lines) and prints the resulting queries, so a file can be
checked before starting a browser.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := terms.Load(args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for i, term := range list {
			fmt.Fprintf(w, "%4d  %s\n", i+1, term)
		}
		fmt.Fprintf(w, "\n%d search terms\n", len(list))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(termsCmd)
}
