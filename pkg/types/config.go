// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// SessionConfig holds browser launch settings passed to the session factory.
type SessionConfig struct {
	// Headless runs the browser without a visible window.
	Headless bool `json:"headless" yaml:"headless"`

	// BrowserPath is the browser executable to drive. Empty selects the
	// system default install.
	BrowserPath string `json:"browser_path,omitempty" yaml:"browser_path,omitempty"`

	// LaunchTimeout bounds browser startup when the session opens.
	LaunchTimeout time.Duration `json:"launch_timeout" yaml:"launch_timeout"`
}

// RunConfig holds settings for one search run. The CLI builds it once from
// flags and config file; it is never mutated during a run.
type RunConfig struct {
	Session SessionConfig `yaml:",inline"`

	// TermFile is the path of a text file with one search term per line.
	TermFile string `json:"term_file" yaml:"term_file"`

	// Delay is the base pause between consecutive terms.
	Delay time.Duration `json:"delay" yaml:"delay"`

	// DelayJitter is the maximum random extra added to Delay, so consecutive
	// searches are not evenly spaced.
	DelayJitter time.Duration `json:"delay_jitter" yaml:"delay_jitter"`

	// Timeout bounds a single search attempt.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// MaxRetries is the number of additional attempts after a term's first
	// failure. Total attempts per term = MaxRetries + 1.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// LogDir is the directory for per-run plain-text log files. Empty
	// disables the file log.
	LogDir string `json:"log_dir,omitempty" yaml:"log_dir,omitempty"`
}

// Validate checks the numeric bounds a run depends on.
func (c RunConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %s", c.Delay)
	}
	if c.DelayJitter < 0 {
		return fmt.Errorf("jitter must not be negative, got %s", c.DelayJitter)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	return nil
}

// ScheduleConfig holds settings for automatic runs.
type ScheduleConfig struct {
	// Interval is the minimum time between automatic runs (default 24h).
	Interval time.Duration `json:"interval" yaml:"interval"`
}
