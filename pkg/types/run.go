// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the search-runner pipeline.
package types

import "time"

// RunStatus describes how a run ended.
type RunStatus string

const (
	// RunCompleted means every term was processed to success or exhausted retries.
	RunCompleted RunStatus = "completed"

	// RunCancelled means the user stopped the run before the last term.
	RunCancelled RunStatus = "cancelled"

	// RunAborted means the browser session could not be opened at all.
	RunAborted RunStatus = "aborted"
)

// Attempt records one execution of a term against the browser session.
type Attempt struct {
	// Term is the search query that was executed.
	Term string `json:"term" yaml:"term"`

	// Seq is the 1-based attempt number for this term.
	Seq int `json:"seq" yaml:"seq"`

	// OK reports whether the search completed.
	OK bool `json:"ok" yaml:"ok"`

	// Elapsed is how long the attempt took.
	Elapsed time.Duration `json:"elapsed" yaml:"elapsed"`

	// Error holds the failure detail for post-hoc diagnosis; empty on success.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// At is when the attempt finished.
	At time.Time `json:"at" yaml:"at"`
}
