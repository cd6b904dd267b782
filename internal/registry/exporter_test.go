package registry

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helperCommand re-runs the test binary as a stand-in for reg.exe.
func helperCommand(t *testing.T, exitCode int, calls *[]string) func(string, ...string) *exec.Cmd {
	t.Helper()
	return func(name string, args ...string) *exec.Cmd {
		*calls = append(*calls, name+" "+strings.Join(args, " "))
		cmd := exec.Command(os.Args[0], "-test.run=TestHelperProcess", "--")
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			fmt.Sprintf("HELPER_EXIT_CODE=%d", exitCode),
		)
		return cmd
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	if os.Getenv("HELPER_EXIT_CODE") != "0" {
		fmt.Fprint(os.Stderr, "ERROR: The system was unable to find the specified registry key or value.")
		os.Exit(1)
	}
	os.Exit(0)
}

func TestRegExeExport(t *testing.T) {
	var calls []string
	r := RegExe{Command: helperCommand(t, 0, &calls)}

	require.NoError(t, r.Export(FullKeyPath, `C:\backups\MachineGuid_20240506_070809.reg`))
	assert.Equal(t, []string{`reg.exe export ` + FullKeyPath + ` C:\backups\MachineGuid_20240506_070809.reg /y`}, calls)
}

func TestRegExeImportFailure(t *testing.T) {
	var calls []string
	r := RegExe{Command: helperCommand(t, 1, &calls)}

	err := r.Import(`C:\backups\MachineGuid_20240506_070809.reg`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reg.exe import failed")
	assert.Contains(t, err.Error(), "unable to find the specified registry key")
}
