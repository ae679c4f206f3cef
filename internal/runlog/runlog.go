// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runlog accumulates per-attempt records and summary counters for a
// search run, and persists finished runs to log and run files.
package runlog

import (
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/search-runner/pkg/types"
)

// Summary holds the run's counters. The driver fills them as terms conclude.
type Summary struct {
	// Terms is the total number of terms loaded for the run.
	Terms int `json:"terms" yaml:"terms"`

	// Succeeded counts terms whose search completed within the retry budget.
	Succeeded int `json:"succeeded" yaml:"succeeded"`

	// Failed counts terms that exhausted every retry.
	Failed int `json:"failed" yaml:"failed"`
}

// RunLog is the append-ordered record of one run.
type RunLog struct {
	ID       string          `json:"id" yaml:"id"`
	TermFile string          `json:"term_file" yaml:"term_file"`
	Status   types.RunStatus `json:"status" yaml:"status"`
	Started  time.Time       `json:"started" yaml:"started"`
	Finished time.Time       `json:"finished" yaml:"finished"`
	Attempts []types.Attempt `json:"attempts" yaml:"attempts"`
	Summary  Summary         `json:"summary" yaml:"summary"`
}

// New starts the log for a run over the given term file.
func New(termFile string) *RunLog {
	return &RunLog{
		ID:       uuid.NewString(),
		TermFile: termFile,
		Started:  time.Now(),
	}
}

// Append records one attempt.
func (l *RunLog) Append(a types.Attempt) {
	l.Attempts = append(l.Attempts, a)
}

// Finish stamps the end time and final status.
func (l *RunLog) Finish(status types.RunStatus) {
	l.Status = status
	l.Finished = time.Now()
}
