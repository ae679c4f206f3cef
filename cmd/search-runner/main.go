// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the search-runner CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the search-runner CLI.
var rootCmd = &cobra.Command{
	Use:   "search-runner",
	Short: "Drive a browser through a list of search queries",
	Long: `search-runner reads search terms from a text file and executes them in a
real browser session, one at a time, with a configurable delay, per-query
timeout, and retry budget. Runs are written to a per-run log file and
recorded in a local history database, which also drives scheduled automatic
runs (the auto command).`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./search-runner.yaml or ~/.config/search-runner/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("search-runner")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "search-runner"))
		}
	}

	viper.SetEnvPrefix("SEARCH_RUNNER")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Flag helpers: a flag set on the command line wins; otherwise a value from
// the config file or environment, when present; otherwise the flag default.

func stringOpt(cmd *cobra.Command, name, key string) string {
	if !cmd.Flags().Changed(name) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

func intOpt(cmd *cobra.Command, name, key string) int {
	if !cmd.Flags().Changed(name) && viper.IsSet(key) {
		return viper.GetInt(key)
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func boolOpt(cmd *cobra.Command, name, key string) bool {
	if !cmd.Flags().Changed(name) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func durationOpt(cmd *cobra.Command, name, key string) time.Duration {
	if !cmd.Flags().Changed(name) && viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	v, _ := cmd.Flags().GetDuration(name)
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
