package process

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cursor-id-reset/cursor-id-reset/internal/message"
	"github.com/cursor-id-reset/cursor-id-reset/internal/utils"
)

const (
	DefaultMaxAttempts = 5
	DefaultInterval    = time.Second
)

type Step int

const (
	StepDone Step = iota
	StepWait
	StepFatal
)

func (s Step) String() string {
	switch s {
	case StepDone:
		return "done"
	case StepWait:
		return "wait"
	case StepFatal:
		return "fatal"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// NextStep decides what to do after poll number attempt (1-based) observed
// stillRunning.
func NextStep(attempt, maxAttempts int, stillRunning []Handle) Step {
	if len(stillRunning) == 0 {
		return StepDone
	}
	if attempt >= maxAttempts {
		return StepFatal
	}
	return StepWait
}

// Matches reports whether a process name refers to target. Comparison ignores
// case and a trailing ".exe".
func Matches(name, target string) bool {
	if strings.EqualFold(name, target) {
		return true
	}
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".exe") && strings.EqualFold(strings.TrimSuffix(lower, ".exe"), target)
}

type Quiescer struct {
	Table       Table
	Sink        message.Sink
	Sleep       utils.Sleeper
	MaxAttempts int
	Interval    time.Duration
}

func NewQuiescer(table Table, sink message.Sink) *Quiescer {
	return &Quiescer{
		Table:       table,
		Sink:        sink,
		Sleep:       utils.Sleep,
		MaxAttempts: DefaultMaxAttempts,
		Interval:    DefaultInterval,
	}
}

// Quiesce stops every process named name. Listing and signalling failures are
// reported and skipped; only a process that outlives the retry budget is an
// error (ErrTimeout).
func (q *Quiescer) Quiesce(ctx context.Context, name string) error {
	running, err := q.find(ctx, name)
	if err != nil {
		q.Sink.Warning("Could not inspect running processes for %s: %v", name, err)
		return nil
	}
	if len(running) == 0 {
		return nil
	}

	q.Sink.Warning("Found running %s", name)
	q.describe(running, "")

	q.Sink.Warning("Attempting to close %s...", name)
	for _, h := range running {
		if err := q.Table.Terminate(ctx, h.PID); err != nil {
			q.Sink.Error("Could not send terminate signal to %s (PID: %d): %v", name, h.PID, err)
		}
	}

	stillRunning := running
	for attempt := 1; ; attempt++ {
		observed, err := q.find(ctx, name)
		if err != nil {
			q.Sink.Warning("Could not inspect running processes for %s: %v", name, err)
		} else {
			stillRunning = observed
		}

		switch NextStep(attempt, q.MaxAttempts, stillRunning) {
		case StepDone:
			q.Sink.Success("%s closed successfully", name)
			return nil
		case StepFatal:
			q.Sink.Error("Unable to close %s after %d attempts", name, q.MaxAttempts)
			q.describe(stillRunning, "still running - ")
			q.Sink.Error("Please close the process manually and try again")
			return fmt.Errorf("%w: %s (%d process(es) after %d attempts)", ErrTimeout, name, len(stillRunning), q.MaxAttempts)
		}

		q.Sink.Warning("Waiting for process to close, attempt %d/%d...", attempt, q.MaxAttempts)
		if err := q.Sleep(ctx, q.Interval); err != nil {
			return fmt.Errorf("interrupted while waiting for %s to close: %w", name, err)
		}
	}
}

func (q *Quiescer) find(ctx context.Context, name string) ([]Handle, error) {
	all, err := q.Table.List(ctx)
	if err != nil {
		return nil, err
	}
	var matched []Handle
	for _, h := range all {
		if Matches(h.Name, name) {
			matched = append(matched, h)
		}
	}
	return matched, nil
}

func (q *Quiescer) describe(handles []Handle, prefix string) {
	for _, h := range handles {
		q.Sink.Plain("  %sPID: %d, Name: %s, Path: %s", prefix, h.PID, h.Name, h.Executable)
	}
}
