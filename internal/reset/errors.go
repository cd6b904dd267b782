package reset

import (
	"errors"
	"fmt"
)

var (
	ErrPrecondition = errors.New("precondition failed")
	ErrBackup       = errors.New("backup failed")
)

// StepError is returned when a fatal condition moved the run to Failed.
// State is the last state reached before the failure.
type StepError struct {
	State State
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("reset stopped after %s: %v", e.State, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
