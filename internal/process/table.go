package process

import (
	"context"
	"errors"
	"fmt"
	"os"

	ps "github.com/shirou/gopsutil/v4/process"
)

// Handle is a read-only view of a live process.
type Handle struct {
	PID        int32
	Name       string
	Executable string
}

// Table enumerates live processes and asks them to exit.
type Table interface {
	List(ctx context.Context) ([]Handle, error)
	Terminate(ctx context.Context, pid int32) error
}

// SystemTable reads the OS process table. The calling process is never listed.
type SystemTable struct{}

func (SystemTable) List(ctx context.Context) ([]Handle, error) {
	procs, err := ps.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	self := int32(os.Getpid())
	handles := make([]Handle, 0, len(procs))
	for _, p := range procs {
		if p.Pid == self {
			continue
		}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// exited or access denied
			continue
		}
		exe, _ := p.ExeWithContext(ctx)
		handles = append(handles, Handle{
			PID:        p.Pid,
			Name:       name,
			Executable: exe,
		})
	}
	return handles, nil
}

// Terminate sends a graceful termination request. A process that is already
// gone is not an error.
func (SystemTable) Terminate(ctx context.Context, pid int32) error {
	p, err := ps.NewProcessWithContext(ctx, pid)
	if err != nil {
		if errors.Is(err, ps.ErrorProcessNotRunning) {
			return nil
		}
		return fmt.Errorf("failed to open process %d: %w", pid, err)
	}
	if err := p.TerminateWithContext(ctx); err != nil {
		return fmt.Errorf("failed to terminate process %d: %w", pid, err)
	}
	return nil
}
