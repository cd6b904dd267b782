package process

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cursor-id-reset/cursor-id-reset/internal/message"
)

// scriptedTable returns polls[i] on the i-th List call and repeats the last
// entry once the script runs out.
type scriptedTable struct {
	polls      [][]Handle
	listErr    error
	calls      int
	terminated []int32
}

func (s *scriptedTable) List(_ context.Context) ([]Handle, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	i := s.calls
	if i >= len(s.polls) {
		i = len(s.polls) - 1
	}
	s.calls++
	return s.polls[i], nil
}

func (s *scriptedTable) Terminate(_ context.Context, pid int32) error {
	s.terminated = append(s.terminated, pid)
	return nil
}

type fakeSleeper struct {
	delays []time.Duration
}

func (f *fakeSleeper) Sleep(_ context.Context, d time.Duration) error {
	f.delays = append(f.delays, d)
	return nil
}

func newTestQuiescer(table Table) (*Quiescer, *fakeSleeper, *message.Recorder) {
	rec := &message.Recorder{}
	sleeper := &fakeSleeper{}
	q := NewQuiescer(table, rec)
	q.Sleep = sleeper.Sleep
	return q, sleeper, rec
}

var (
	cursorMain   = Handle{PID: 100, Name: "Cursor", Executable: "/opt/cursor/Cursor"}
	cursorHelper = Handle{PID: 101, Name: "cursor", Executable: "/opt/cursor/cursor"}
	unrelated    = Handle{PID: 200, Name: "bash", Executable: "/bin/bash"}
)

func TestNextStep(t *testing.T) {
	var tests = []struct {
		name     string
		attempt  int
		running  []Handle
		expected Step
	}{
		{name: "nothing running", attempt: 1, running: nil, expected: StepDone},
		{name: "nothing running on last attempt", attempt: 5, running: nil, expected: StepDone},
		{name: "still running early", attempt: 1, running: []Handle{cursorMain}, expected: StepWait},
		{name: "still running before budget", attempt: 4, running: []Handle{cursorMain}, expected: StepWait},
		{name: "budget exhausted", attempt: 5, running: []Handle{cursorMain}, expected: StepFatal},
		{name: "past budget", attempt: 7, running: []Handle{cursorMain}, expected: StepFatal},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NextStep(tc.attempt, 5, tc.running))
		})
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches("Cursor", "Cursor"))
	assert.True(t, Matches("cursor", "Cursor"))
	assert.True(t, Matches("CURSOR", "cursor"))
	assert.True(t, Matches("Cursor.exe", "Cursor"))
	assert.False(t, Matches("cursor-id-reset", "Cursor"))
	assert.False(t, Matches("Cursor Helper", "Cursor"))
}

func TestQuiesceNoMatchingProcess(t *testing.T) {
	table := &scriptedTable{polls: [][]Handle{{unrelated}}}
	q, sleeper, rec := newTestQuiescer(table)

	err := q.Quiesce(context.Background(), "Cursor")
	require.NoError(t, err)
	assert.Equal(t, 1, table.calls)
	assert.Empty(t, table.terminated)
	assert.Empty(t, sleeper.delays)
	assert.Empty(t, rec.Entries)
}

func TestQuiesceProcessesExitAfterSecondPoll(t *testing.T) {
	table := &scriptedTable{polls: [][]Handle{
		{cursorMain, cursorHelper, unrelated},
		{cursorMain, unrelated},
		{unrelated},
	}}
	q, sleeper, rec := newTestQuiescer(table)

	err := q.Quiesce(context.Background(), "Cursor")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int32{100, 101}, table.terminated)
	assert.Equal(t, []time.Duration{time.Second}, sleeper.delays)
	assert.Equal(t, 3, table.calls)
	assert.True(t, rec.Contains(message.LevelSuccess, "Cursor closed successfully"))
}

func TestQuiesceTimesOut(t *testing.T) {
	table := &scriptedTable{polls: [][]Handle{{cursorMain}}}
	q, sleeper, rec := newTestQuiescer(table)

	err := q.Quiesce(context.Background(), "Cursor")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Len(t, sleeper.delays, DefaultMaxAttempts-1)
	assert.Equal(t, 1+DefaultMaxAttempts, table.calls)
	assert.True(t, rec.Contains(message.LevelError, "after 5 attempts"))
	assert.True(t, rec.Contains(message.LevelPlain, "still running - PID: 100"))
}

func TestQuiesceListFailureIsNotFatal(t *testing.T) {
	table := &scriptedTable{listErr: errors.New("permission denied")}
	q, _, rec := newTestQuiescer(table)

	err := q.Quiesce(context.Background(), "Cursor")
	require.NoError(t, err)
	assert.True(t, rec.Contains(message.LevelWarning, "permission denied"))
}

func TestQuiesceStopsWhenContextEnds(t *testing.T) {
	table := &scriptedTable{polls: [][]Handle{{cursorMain}}}
	q, _, _ := newTestQuiescer(table)
	q.Sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	err := q.Quiesce(context.Background(), "Cursor")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}
