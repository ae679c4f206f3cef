// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

var _ Factory = (*ChromeFactory)(nil)

func TestClassifySearchErrNil(t *testing.T) {
	if err := classifySearchErr(context.Background(), "cats", nil); err != nil {
		t.Errorf("classifySearchErr(nil) = %v, want nil", err)
	}
}

func TestClassifySearchErrTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := classifySearchErr(ctx, "cats", context.DeadlineExceeded)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("classifySearchErr() = %v, want ErrTimeout", err)
	}
}

func TestClassifySearchErrDeadlineWithoutCtx(t *testing.T) {
	// A deadline error from the browser context counts as a timeout even
	// when the attempt context itself has not expired yet.
	err := classifySearchErr(context.Background(), "cats",
		fmt.Errorf("run: %w", context.DeadlineExceeded))
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("classifySearchErr() = %v, want ErrTimeout", err)
	}
}

func TestClassifySearchErrCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := classifySearchErr(ctx, "cats", context.Canceled)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("classifySearchErr() = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrSearch) || errors.Is(err, ErrTimeout) {
		t.Errorf("cancellation misclassified as search failure: %v", err)
	}
}

func TestClassifySearchErrGeneric(t *testing.T) {
	err := classifySearchErr(context.Background(), "cats", errors.New("node not found"))
	if !errors.Is(err, ErrSearch) {
		t.Errorf("classifySearchErr() = %v, want ErrSearch", err)
	}
}
