//go:build windows

package launch

import "os/exec"

// exitStatus has no signal convention to recover on Windows.
func exitStatus(err *exec.ExitError) (int, bool) {
	return 0, false
}
