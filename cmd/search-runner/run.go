// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/search-runner/internal/driver"
	"github.com/pdiddy/search-runner/internal/history"
	"github.com/pdiddy/search-runner/internal/logs"
	"github.com/pdiddy/search-runner/internal/runlog"
	"github.com/pdiddy/search-runner/internal/session"
	"github.com/pdiddy/search-runner/internal/terms"
	"github.com/pdiddy/search-runner/pkg/types"
)

const (
	defaultDelay         = 3 * time.Second
	defaultJitter        = 4 * time.Second
	defaultTimeout       = 30 * time.Second
	defaultMaxRetries    = 3
	defaultLaunchTimeout = 30 * time.Second
	defaultLogDir        = "logs"
	defaultHistoryDB     = "search-runner.db"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute every search term in a file",
	Long: `Run loads search terms from a text file and submits each one to Bing in a
single browser session, pausing between terms. A failed search is retried up
to the configured budget, then the run moves on to the next term.
Interrupting the run (Ctrl-C) closes the browser and keeps the partial log.`,
	RunE: runRun,
}

func init() {
	addRunFlags(runCmd)
	runCmd.Flags().Bool("headless", false, "run the browser without a window")
	runCmd.Flags().String("out", "", "also save the finished run log to this YAML file")

	rootCmd.AddCommand(runCmd)
}

// addRunFlags registers the flags shared by run and auto.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("terms", "", "text file with one search term per line (required)")
	cmd.Flags().Duration("delay", defaultDelay, "base pause between terms")
	cmd.Flags().Duration("jitter", defaultJitter, "maximum random extra added to the delay")
	cmd.Flags().Duration("timeout", defaultTimeout, "per-search timeout")
	cmd.Flags().Int("max-retries", defaultMaxRetries, "additional attempts after a term's first failure")
	cmd.Flags().String("browser", "", "browser executable to drive (default: system browser)")
	cmd.Flags().String("log-dir", defaultLogDir, "directory for per-run log files (empty disables)")
	cmd.Flags().String("history-db", defaultHistoryDB, "SQLite run history database (empty disables)")
}

// runConfigFromFlags resolves the shared flags against the config file.
func runConfigFromFlags(cmd *cobra.Command) (types.RunConfig, error) {
	cfg := types.RunConfig{
		Session: types.SessionConfig{
			BrowserPath:   stringOpt(cmd, "browser", "browser_path"),
			LaunchTimeout: defaultLaunchTimeout,
		},
		TermFile:    stringOpt(cmd, "terms", "term_file"),
		Delay:       durationOpt(cmd, "delay", "delay"),
		DelayJitter: durationOpt(cmd, "jitter", "jitter"),
		Timeout:     durationOpt(cmd, "timeout", "timeout"),
		MaxRetries:  intOpt(cmd, "max-retries", "max_retries"),
		LogDir:      stringOpt(cmd, "log-dir", "log_dir"),
	}

	if cfg.TermFile == "" {
		return cfg, fmt.Errorf("no term file: pass --terms or set term_file in the config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := runConfigFromFlags(cmd)
	if err != nil {
		return err
	}
	cfg.Session.Headless = boolOpt(cmd, "headless", "headless")

	outFile, _ := cmd.Flags().GetString("out")
	historyDB := stringOpt(cmd, "history-db", "history_db")

	return executeRun(cmd, cfg, historyDB, outFile, false)
}

// executeRun performs one run end to end: load terms, drive the browser,
// then persist the outcome to the log file, run file, and history database.
// Shared by run and auto.
func executeRun(cmd *cobra.Command, cfg types.RunConfig, historyDB, outFile string, auto bool) error {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	log, err := logs.New(logLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	termList, err := terms.Load(cfg.TermFile)
	if err != nil {
		return err
	}

	// Ctrl-C cancels the run at the next checkpoint; the partial log is
	// still persisted below.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "running %d searches from %s\n", len(termList), cfg.TermFile)

	rl, runErr := driver.Run(ctx, termList, cfg, &session.ChromeFactory{Log: log}, driver.WriterSink(w), log)

	fmt.Fprintf(w, "\n%s: %d terms, %d succeeded, %d failed\n",
		rl.Status, rl.Summary.Terms, rl.Summary.Succeeded, rl.Summary.Failed)

	if cfg.LogDir != "" {
		path, err := runlog.WriteLogFile(cfg.LogDir, rl)
		if err != nil {
			return fmt.Errorf("saving run log: %w", err)
		}
		fmt.Fprintf(w, "log written: %s\n", path)
	}
	if outFile != "" {
		if err := runlog.WriteRunFile(outFile, rl); err != nil {
			return fmt.Errorf("saving run file: %w", err)
		}
		fmt.Fprintf(w, "run file written: %s\n", outFile)
	}
	if historyDB != "" {
		if err := recordHistory(historyDB, rl, auto); err != nil {
			return err
		}
	}

	return runErr
}

func recordHistory(path string, rl *runlog.RunLog, auto bool) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.RecordRun(rl, auto)
}
