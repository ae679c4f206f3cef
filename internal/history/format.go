// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// FormatTable writes runs as a human-readable table to w.
func FormatTable(records []RunRecord, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-19s  %-10s  %-5s  %-5s  %-6s  %-4s  %s\n",
		"Finished", "Status", "Terms", "OK", "Failed", "Auto", "Term file")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, r := range records {
		auto := ""
		if r.Auto {
			auto = "yes"
		}
		termFile := r.TermFile
		if len(termFile) > 30 {
			termFile = "..." + termFile[len(termFile)-27:]
		}
		fmt.Fprintf(w, "%-19s  %-10s  %-5d  %-5d  %-6d  %-4s  %s\n",
			r.Finished.Local().Format("2006-01-02 15:04:05"),
			r.Status, r.Terms, r.Succeeded, r.Failed, auto, termFile)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(records))
}

// FormatJSON writes runs as indented JSON to w.
func FormatJSON(records []RunRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Age formats how long ago t was, rounded for humans.
func Age(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%.1fh", d.Hours())
	}
}
