// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"

	"github.com/pdiddy/search-runner/pkg/types"
)

const (
	searchURL    = "https://www.bing.com"
	searchBoxSel = `input[name="q"], textarea[name="q"]`
	resultsSel   = `#b_results`
)

// ChromeFactory opens DevTools-protocol sessions against Bing.
type ChromeFactory struct {
	// Log receives session lifecycle events. Nil disables logging.
	Log *zap.Logger
}

// Open launches the browser and verifies it responds before the run starts.
// Launch failures wrap ErrLaunch so the driver can abort cleanly.
func (f *ChromeFactory) Open(ctx context.Context, cfg types.SessionConfig) (Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(1280, 900),
	)
	if cfg.BrowserPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.BrowserPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser now, bounded by the launch timeout, so a missing or
	// broken executable surfaces before any term is processed.
	startCtx := browserCtx
	cancelStart := func() {}
	if cfg.LaunchTimeout > 0 {
		startCtx, cancelStart = context.WithTimeout(browserCtx, cfg.LaunchTimeout)
	}
	err := chromedp.Run(startCtx, chromedp.Navigate("about:blank"))
	cancelStart()
	if err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("%w: %v", ErrLaunch, err)
	}

	log := f.Log
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("browser session opened",
		zap.Bool("headless", cfg.Headless),
		zap.String("browser_path", cfg.BrowserPath))

	return &chromeSession{
		ctx:         browserCtx,
		cancelAlloc: allocCancel,
		log:         log,
	}, nil
}

// chromeSession drives one browser instance. All searches reuse the same tab.
type chromeSession struct {
	ctx         context.Context
	cancelAlloc context.CancelFunc
	log         *zap.Logger
}

// Search navigates to Bing, types the term into the search box, submits it,
// and waits for the results list to render.
func (s *chromeSession) Search(ctx context.Context, term string) error {
	// chromedp actions must run on the browser context chain, so the
	// attempt's deadline and cancellation are mirrored onto a child of it.
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	if d, ok := ctx.Deadline(); ok {
		runCtx, cancel = context.WithDeadline(runCtx, d)
		defer cancel()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx,
		chromedp.Navigate(searchURL),
		chromedp.WaitVisible(searchBoxSel, chromedp.ByQuery),
		chromedp.Clear(searchBoxSel, chromedp.ByQuery),
		chromedp.SendKeys(searchBoxSel, term+kb.Enter, chromedp.ByQuery),
		chromedp.WaitReady(resultsSel, chromedp.ByQuery),
	)
	return classifySearchErr(ctx, term, err)
}

// classifySearchErr maps a raw automation error onto the session error kinds
// the driver retries on, passing run-level cancellation through untouched.
func classifySearchErr(ctx context.Context, term string, err error) error {
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil && !errors.Is(ctx.Err(), context.DeadlineExceeded):
		return ctx.Err()
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %q", ErrTimeout, term)
	default:
		return fmt.Errorf("%w: %q: %v", ErrSearch, term, err)
	}
}

// Close shuts the browser down and releases the allocator.
func (s *chromeSession) Close() error {
	err := chromedp.Cancel(s.ctx)
	s.cancelAlloc()
	if err != nil {
		return fmt.Errorf("closing browser: %w", err)
	}
	s.log.Info("browser session closed")
	return nil
}
