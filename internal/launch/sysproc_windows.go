//go:build windows

package launch

import (
	"os/exec"
	"syscall"
)

// createNoWindow keeps the spawned JVM from opening a console window.
const createNoWindow = 0x08000000

func suppressConsoleWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
