// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/search-runner/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent runs from the history database",
	Long: `History prints the most recent runs recorded in the history database,
newest first. Use --attempts with a run ID to list that run's individual
attempts.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("history-db", defaultHistoryDB, "SQLite run history database")
	historyCmd.Flags().Int("last", 10, "number of runs to show")
	historyCmd.Flags().String("attempts", "", "show the attempts of this run ID")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath := stringOpt(cmd, "history-db", "history_db")
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	w := cmd.OutOrStdout()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	if runID, _ := cmd.Flags().GetString("attempts"); runID != "" {
		attempts, err := store.Attempts(runID)
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			return fmt.Errorf("no attempts recorded for run %q", runID)
		}
		for _, a := range attempts {
			outcome := "ok"
			if !a.OK {
				outcome = "fail"
			}
			fmt.Fprintf(w, "%-4s  attempt %d  %q  %s", outcome, a.Seq, a.Term, a.Elapsed)
			if a.Error != "" {
				fmt.Fprintf(w, "  %s", a.Error)
			}
			fmt.Fprintln(w)
		}
		return nil
	}

	n, _ := cmd.Flags().GetInt("last")
	records, err := store.Recent(n)
	if err != nil {
		return err
	}

	if jsonOutput {
		return history.FormatJSON(records, w)
	}
	history.FormatTable(records, w)
	return nil
}
