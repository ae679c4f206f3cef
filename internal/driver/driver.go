// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package driver executes a search run: one browser session, one term at a
// time, with a retry budget per term, a randomized delay between terms, and
// cancellation checkpoints around every blocking wait.
package driver

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/search-runner/internal/runlog"
	"github.com/pdiddy/search-runner/internal/session"
	"github.com/pdiddy/search-runner/pkg/types"
)

// Run drives one browser session through every term in order. The session is
// opened once through factory and closed on every exit path. A term that
// fails is retried immediately, up to cfg.MaxRetries additional attempts;
// exhausting the budget marks the term failed and the run moves on. Only a
// session launch failure aborts the run, with zero terms processed.
//
// A cancelled ctx stops the run at the next checkpoint: the accumulated log
// is returned with status cancelled and no further retries or delays happen.
// The returned log is never nil.
func Run(ctx context.Context, terms []string, cfg types.RunConfig, factory session.Factory, sink Sink, log *zap.Logger) (*runlog.RunLog, error) {
	if sink == nil {
		sink = SinkFunc(func(types.Attempt) {})
	}
	if log == nil {
		log = zap.NewNop()
	}

	rl := runlog.New(cfg.TermFile)
	rl.Summary.Terms = len(terms)

	sess, err := factory.Open(ctx, cfg.Session)
	if err != nil {
		rl.Finish(types.RunAborted)
		log.Error("run aborted", zap.Error(err))
		return rl, fmt.Errorf("opening browser session: %w", err)
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			log.Warn("closing browser session", zap.Error(cerr))
		}
	}()

	log.Info("run started",
		zap.String("run_id", rl.ID),
		zap.Int("terms", len(terms)),
		zap.Duration("timeout", cfg.Timeout),
		zap.Int("max_retries", cfg.MaxRetries))

	for i, term := range terms {
		if ctx.Err() != nil {
			rl.Finish(types.RunCancelled)
			return rl, nil
		}
		if i > 0 && !sleep(ctx, cfg.Delay+jitter(cfg.DelayJitter)) {
			rl.Finish(types.RunCancelled)
			return rl, nil
		}

		ok, cancelled := searchWithRetry(ctx, sess, term, cfg, rl, sink, log)
		if cancelled {
			rl.Finish(types.RunCancelled)
			return rl, nil
		}
		if ok {
			rl.Summary.Succeeded++
		} else {
			rl.Summary.Failed++
		}
	}

	rl.Finish(types.RunCompleted)
	log.Info("run finished",
		zap.String("run_id", rl.ID),
		zap.Int("succeeded", rl.Summary.Succeeded),
		zap.Int("failed", rl.Summary.Failed))
	return rl, nil
}

// searchWithRetry executes one term for up to cfg.MaxRetries+1 attempts,
// recording every attempt. Retries are immediate; spacing between terms is
// the caller's concern. cancelled is true when the run context was cancelled
// before or during an attempt, in which case no attempt is recorded for the
// interrupted call.
func searchWithRetry(ctx context.Context, sess session.Session, term string, cfg types.RunConfig, rl *runlog.RunLog, sink Sink, log *zap.Logger) (ok, cancelled bool) {
	attempts := cfg.MaxRetries + 1
	for seq := 1; seq <= attempts; seq++ {
		if ctx.Err() != nil {
			return false, true
		}

		start := time.Now()
		attemptCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		err := sess.Search(attemptCtx, term)
		cancel()

		if err != nil && ctx.Err() != nil {
			// The user stopped the run mid-attempt; that is not a search
			// failure and is not recorded.
			return false, true
		}

		a := types.Attempt{
			Term:    term,
			Seq:     seq,
			OK:      err == nil,
			Elapsed: time.Since(start),
			At:      time.Now(),
		}
		if err != nil {
			a.Error = err.Error()
		}
		rl.Append(a)
		sink.Attempt(a)

		if err == nil {
			log.Info("search ok",
				zap.String("term", term),
				zap.Int("attempt", seq),
				zap.Duration("elapsed", a.Elapsed))
			return true, false
		}
		log.Warn("search failed",
			zap.String("term", term),
			zap.Int("attempt", seq),
			zap.Duration("elapsed", a.Elapsed),
			zap.Error(err))
	}
	return false, false
}

// sleep waits for d or until ctx is cancelled, reporting whether the full
// delay elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// jitter returns a uniformly random duration in [0, max].
func jitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(max) + 1))
}
