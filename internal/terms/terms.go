// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package terms loads search terms from plain-text term files.
package terms

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoTerms is returned when a term file contains no non-blank lines.
var ErrNoTerms = errors.New("term file contains no search terms")

// Load reads one search term per line from path. Surrounding whitespace is
// trimmed and blank lines are dropped; file order is preserved and duplicate
// terms are kept, each executed independently by the run driver.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening term file: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading term file %s: %w", path, err)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoTerms)
	}
	return out, nil
}
