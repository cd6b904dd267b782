package registry

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// RegExe drives the reg.exe utility.
type RegExe struct {
	// Command builds the process to run; exec.Command when nil.
	Command func(name string, args ...string) *exec.Cmd
}

func (r RegExe) Export(keyPath, file string) error {
	return r.run("export", keyPath, file, "/y")
}

func (r RegExe) Import(file string) error {
	return r.run("import", file)
}

func (r RegExe) run(args ...string) error {
	command := r.Command
	if command == nil {
		command = exec.Command
	}

	var out bytes.Buffer
	cmd := command("reg.exe", args...)
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if detail := strings.TrimSpace(out.String()); detail != "" {
			return fmt.Errorf("reg.exe %s failed: %w: %s", args[0], err, detail)
		}
		return fmt.Errorf("reg.exe %s failed: %w", args[0], err)
	}
	return nil
}
