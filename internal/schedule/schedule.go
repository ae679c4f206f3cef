// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule decides when an automatic run is due.
package schedule

import "time"

// DefaultInterval is the gap between automatic runs when none is configured.
const DefaultInterval = 24 * time.Hour

// Due reports whether an automatic run should start: either no previous run
// exists (lastRun is zero) or the last one finished at least interval ago.
// A non-positive interval means runs are always due.
func Due(lastRun time.Time, interval time.Duration, now time.Time) bool {
	if lastRun.IsZero() {
		return true
	}
	if interval <= 0 {
		return true
	}
	return now.Sub(lastRun) >= interval
}

// NextDue returns when the next automatic run becomes due. Zero when a run
// is already due.
func NextDue(lastRun time.Time, interval time.Duration, now time.Time) time.Duration {
	if Due(lastRun, interval, now) {
		return 0
	}
	return interval - now.Sub(lastRun)
}
