// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/search-runner/internal/history"
	"github.com/pdiddy/search-runner/internal/schedule"
)

var autoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Run searches only when the configured interval has elapsed",
	Long: `Auto behaves like run, but first consults the history database: when the
most recent automatic run completed less than the interval ago, nothing
happens. Automatic runs always use a headless browser, so auto is safe to
wire into cron or a login script.`,
	RunE: runAuto,
}

func init() {
	addRunFlags(autoCmd)
	autoCmd.Flags().Duration("interval", schedule.DefaultInterval, "minimum time between automatic runs")

	rootCmd.AddCommand(autoCmd)
}

func runAuto(cmd *cobra.Command, args []string) error {
	cfg, err := runConfigFromFlags(cmd)
	if err != nil {
		return err
	}
	cfg.Session.Headless = true

	historyDB := stringOpt(cmd, "history-db", "history_db")
	if historyDB == "" {
		return fmt.Errorf("auto needs a history database to track the last run; pass --history-db")
	}
	interval := durationOpt(cmd, "interval", "auto_interval")

	store, err := history.Open(historyDB)
	if err != nil {
		return err
	}
	last, found, err := store.LastFinished(true)
	store.Close()
	if err != nil {
		return err
	}

	now := time.Now()
	if found && !schedule.Due(last, interval, now) {
		fmt.Fprintf(cmd.OutOrStdout(), "last automatic run finished %s ago; next due in %s\n",
			history.Age(last, now), schedule.NextDue(last, interval, now).Round(time.Minute))
		return nil
	}

	return executeRun(cmd, cfg, historyDB, "", true)
}
