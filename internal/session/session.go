// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session opens and drives live browser sessions. The run driver
// only sees the Session and Factory interfaces; the production factory
// launches a Chromium-family browser over the DevTools protocol, and tests
// inject fakes.
package session

import (
	"context"
	"errors"

	"github.com/pdiddy/search-runner/pkg/types"
)

// Typed failures the driver distinguishes when deciding how to proceed.
var (
	// ErrLaunch means the browser could not be started; this aborts the run.
	ErrLaunch = errors.New("browser launch failed")

	// ErrTimeout means a search attempt exceeded its deadline; retryable.
	ErrTimeout = errors.New("search timed out")

	// ErrSearch means the automation failed for another reason; retryable.
	ErrSearch = errors.New("search failed")
)

// Session is a live, controllable browser handle capable of performing
// searches. Implementations are not safe for concurrent use: the run driver
// owns the session for the duration of a run.
type Session interface {
	// Search submits term as a query and waits for the results page. The
	// context carries the per-attempt deadline; deadline expiry surfaces as
	// ErrTimeout, other automation failures as ErrSearch.
	Search(ctx context.Context, term string) error

	// Close releases the browser. Called exactly once per session, on every
	// run exit path.
	Close() error
}

// Factory opens sessions with the given launch options.
type Factory interface {
	Open(ctx context.Context, cfg types.SessionConfig) (Session, error)
}
