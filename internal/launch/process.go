package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
)

// Process is a spawned game process with its output pipes attached.
type Process struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser
}

// PID returns the operating system process id.
func (p *Process) PID() int {
	return p.cmd.Process.Pid
}

// Spawn validates the plan and starts the child process with piped
// stdout/stderr. The context kills the child when cancelled. On Windows the
// process is started without a visible console window.
func Spawn(ctx context.Context, plan *Plan) (*Process, error) {
	logger := ctxlog.FromContext(ctx)

	if plan.MainClass == "" {
		return nil, ErrMissingMainClass
	}
	if _, err := os.Stat(plan.JavaExec); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q", ErrMissingJavaExecutable, plan.JavaExec)
		}
		return nil, fmt.Errorf("%w: %q: %v", ErrMissingJavaExecutable, plan.JavaExec, err)
	}

	cmd := exec.CommandContext(ctx, plan.JavaExec, plan.Args()...)
	cmd.Dir = plan.WorkingDir
	suppressConsoleWindow(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: stdout pipe: %v", ErrSpawn, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdout.Close()
		return nil, fmt.Errorf("%w: stderr pipe: %v", ErrSpawn, err)
	}

	logger.Debug("Spawning game process.",
		"java", plan.JavaExec,
		"mainClass", plan.MainClass,
		"workingDir", plan.WorkingDir,
		"argCount", len(plan.JVMArgs)+len(plan.GameArgs)+1)

	if err := cmd.Start(); err != nil {
		stdout.Close()
		stderr.Close()
		return nil, fmt.Errorf("%w: %v", ErrSpawn, err)
	}

	logger.Info("Game process started.", "pid", cmd.Process.Pid)
	return &Process{cmd: cmd, stdout: stdout, stderr: stderr}, nil
}
