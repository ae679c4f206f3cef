// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package driver

import (
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/search-runner/pkg/types"
)

// Sink receives one record per attempt as the run progresses. The CLI wires
// a writer-backed sink; tests capture records directly.
type Sink interface {
	Attempt(a types.Attempt)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(types.Attempt)

// Attempt calls f(a).
func (f SinkFunc) Attempt(a types.Attempt) { f(a) }

// WriterSink returns a Sink printing one human-readable line per attempt to w.
func WriterSink(w io.Writer) Sink {
	return SinkFunc(func(a types.Attempt) {
		elapsed := a.Elapsed.Round(time.Millisecond)
		if a.OK {
			fmt.Fprintf(w, "ok:      %q (attempt %d, %s)\n", a.Term, a.Seq, elapsed)
			return
		}
		fmt.Fprintf(w, "failed:  %q (attempt %d, %s): %s\n", a.Term, a.Seq, elapsed, a.Error)
	})
}
