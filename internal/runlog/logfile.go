// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const logTimestampFmt = "20060102_150405"

// WriteLogFile writes a human-readable attempt log to
// dir/search_log_<started>.log, creating dir if needed. It returns the path
// of the written file.
func WriteLogFile(dir string, l *RunLog) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating log directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("search_log_%s.log", l.Started.Format(logTimestampFmt)))

	var b strings.Builder
	fmt.Fprintf(&b, "run %s\n", l.ID)
	fmt.Fprintf(&b, "terms from %s, started %s\n\n", l.TermFile, l.Started.Format(time.RFC3339))

	for _, a := range l.Attempts {
		outcome := "ok"
		if !a.OK {
			outcome = "fail"
		}
		fmt.Fprintf(&b, "%s  %-4s  attempt %d  %q  %s",
			a.At.Format(time.RFC3339), outcome, a.Seq, a.Term, a.Elapsed.Round(time.Millisecond))
		if a.Error != "" {
			fmt.Fprintf(&b, "  %s", a.Error)
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "\n%s: %d terms, %d succeeded, %d failed\n",
		l.Status, l.Summary.Terms, l.Summary.Succeeded, l.Summary.Failed)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing log file: %w", err)
	}
	return path, nil
}
