// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/search-runner/internal/runlog"
	"github.com/pdiddy/search-runner/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func finishedLog(status types.RunStatus) *runlog.RunLog {
	l := runlog.New("terms.txt")
	l.Append(types.Attempt{Term: "cats", Seq: 1, OK: false, Elapsed: 700 * time.Millisecond, Error: "search timed out", At: time.Now()})
	l.Append(types.Attempt{Term: "cats", Seq: 2, OK: true, Elapsed: 300 * time.Millisecond, At: time.Now()})
	l.Summary = runlog.Summary{Terms: 1, Succeeded: 1, Failed: 0}
	l.Finish(status)
	return l
}

func TestRecordAndRecent(t *testing.T) {
	s := testStore(t)

	l := finishedLog(types.RunCompleted)
	require.NoError(t, s.RecordRun(l, false))

	records, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, l.ID, r.ID)
	assert.Equal(t, types.RunCompleted, r.Status)
	assert.Equal(t, 1, r.Terms)
	assert.Equal(t, 1, r.Succeeded)
	assert.Equal(t, 0, r.Failed)
	assert.False(t, r.Auto)
	assert.WithinDuration(t, l.Finished, r.Finished, time.Millisecond)
}

func TestAttemptsRoundTrip(t *testing.T) {
	s := testStore(t)

	l := finishedLog(types.RunCompleted)
	require.NoError(t, s.RecordRun(l, false))

	attempts, err := s.Attempts(l.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	assert.Equal(t, "cats", attempts[0].Term)
	assert.Equal(t, 1, attempts[0].Seq)
	assert.False(t, attempts[0].OK)
	assert.Equal(t, "search timed out", attempts[0].Error)
	assert.Equal(t, 700*time.Millisecond, attempts[0].Elapsed)

	assert.True(t, attempts[1].OK)
	assert.Empty(t, attempts[1].Error)
}

func TestRecentOrderAndLimit(t *testing.T) {
	s := testStore(t)

	var ids []string
	for i := 0; i < 5; i++ {
		l := finishedLog(types.RunCompleted)
		l.Finished = time.Now().Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.RecordRun(l, false))
		ids = append(ids, l.ID)
	}

	records, err := s.Recent(3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// Newest first.
	assert.Equal(t, ids[4], records[0].ID)
	assert.Equal(t, ids[3], records[1].ID)
	assert.Equal(t, ids[2], records[2].ID)
}

func TestLastFinished(t *testing.T) {
	s := testStore(t)

	_, ok, err := s.LastFinished(false)
	require.NoError(t, err)
	assert.False(t, ok, "empty store has no last run")

	manual := finishedLog(types.RunCompleted)
	manual.Finished = time.Now().Add(-2 * time.Hour)
	require.NoError(t, s.RecordRun(manual, false))

	// Cancelled runs never count as a completed run.
	cancelled := finishedLog(types.RunCancelled)
	require.NoError(t, s.RecordRun(cancelled, true))

	last, ok, err := s.LastFinished(false)
	require.NoError(t, err)
	require.True(t, ok)
	assert.WithinDuration(t, manual.Finished, last, time.Millisecond)

	// No completed auto run yet.
	_, ok, err = s.LastFinished(true)
	require.NoError(t, err)
	assert.False(t, ok)

	auto := finishedLog(types.RunCompleted)
	auto.Finished = time.Now().Add(-time.Hour)
	require.NoError(t, s.RecordRun(auto, true))

	last, ok, err = s.LastFinished(true)
	require.NoError(t, err)
	require.True(t, ok)
	assert.WithinDuration(t, auto.Finished, last, time.Millisecond)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.RecordRun(finishedLog(types.RunCompleted), false))
	require.NoError(t, s1.Close())

	// Reopening an existing database must not disturb its rows.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	records, err := s2.Recent(10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestFormatTable(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Contains(t, buf.String(), "No runs recorded.")

	buf.Reset()
	FormatTable([]RunRecord{{
		Status: types.RunCompleted, Terms: 4, Succeeded: 3, Failed: 1,
		Auto: true, TermFile: "terms.txt", Finished: time.Now(),
	}}, &buf)

	out := buf.String()
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "terms.txt")
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "1 runs")
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	err := FormatJSON([]RunRecord{{ID: "r1", Status: types.RunCancelled}}, &buf)
	require.NoError(t, err)
	assert.True(t, strings.Contains(buf.String(), `"cancelled"`))
}
