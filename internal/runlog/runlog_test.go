// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runlog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/search-runner/pkg/types"
)

func sampleLog() *RunLog {
	l := New("terms.txt")
	l.Append(types.Attempt{Term: "cats", Seq: 1, OK: false, Elapsed: 900 * time.Millisecond, Error: "search timed out", At: time.Now()})
	l.Append(types.Attempt{Term: "cats", Seq: 2, OK: true, Elapsed: 400 * time.Millisecond, At: time.Now()})
	l.Append(types.Attempt{Term: "dogs", Seq: 1, OK: true, Elapsed: 300 * time.Millisecond, At: time.Now()})
	l.Summary = Summary{Terms: 2, Succeeded: 2, Failed: 0}
	l.Finish(types.RunCompleted)
	return l
}

func TestNewAssignsID(t *testing.T) {
	a, b := New("a.txt"), New("b.txt")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("New() IDs = %q, %q, want distinct non-empty", a.ID, b.ID)
	}
}

func TestFinishStampsStatus(t *testing.T) {
	l := New("terms.txt")
	l.Finish(types.RunCancelled)
	if l.Status != types.RunCancelled {
		t.Errorf("Status = %q, want %q", l.Status, types.RunCancelled)
	}
	if l.Finished.IsZero() {
		t.Error("Finished not stamped")
	}
}

func TestWriteLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	l := sampleLog()

	path, err := WriteLogFile(dir, l)
	if err != nil {
		t.Fatalf("WriteLogFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	for _, want := range []string{
		l.ID,
		`attempt 1  "cats"`,
		`attempt 2  "cats"`,
		"search timed out",
		"completed: 2 terms, 2 succeeded, 0 failed",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("log file missing %q:\n%s", want, text)
		}
	}
}

func TestRunFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	l := sampleLog()

	if err := WriteRunFile(path, l); err != nil {
		t.Fatalf("WriteRunFile() error = %v", err)
	}
	got, err := ReadRunFile(path)
	if err != nil {
		t.Fatalf("ReadRunFile() error = %v", err)
	}

	if got.ID != l.ID {
		t.Errorf("ID = %q, want %q", got.ID, l.ID)
	}
	if got.Status != types.RunCompleted {
		t.Errorf("Status = %q, want completed", got.Status)
	}
	if len(got.Attempts) != 3 {
		t.Fatalf("len(Attempts) = %d, want 3", len(got.Attempts))
	}
	if got.Attempts[0].Error != "search timed out" {
		t.Errorf("Attempts[0].Error = %q", got.Attempts[0].Error)
	}
	if got.Summary != l.Summary {
		t.Errorf("Summary = %+v, want %+v", got.Summary, l.Summary)
	}
}

func TestReadRunFileMissing(t *testing.T) {
	if _, err := ReadRunFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("ReadRunFile() error = nil, want error")
	}
}
