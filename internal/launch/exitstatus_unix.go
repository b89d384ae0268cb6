//go:build !windows

package launch

import (
	"os/exec"
	"syscall"
)

// exitStatus recovers the conventional 128+signal exit code for a
// signal-terminated process.
func exitStatus(err *exec.ExitError) (int, bool) {
	status, ok := err.Sys().(syscall.WaitStatus)
	if !ok || !status.Signaled() {
		return 0, false
	}
	return 128 + int(status.Signal()), true
}
