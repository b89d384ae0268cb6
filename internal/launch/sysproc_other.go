//go:build !windows

package launch

import "os/exec"

// suppressConsoleWindow is a no-op outside Windows; no console window is
// created in the first place.
func suppressConsoleWindow(cmd *exec.Cmd) {}
