package launch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
)

// maxCapturedOutput caps how much of each output stream survives into the
// terminal event. Only the tail is kept; crashes log last.
const maxCapturedOutput = 64 * 1024

// Result is the terminal classification of a supervised process: the raw
// exit code, its structural outcome, the heuristic log-derived cause, and
// the trimmed captured output.
type Result struct {
	ExitCode int
	Outcome  ExitOutcome
	Cause    CrashCause
	Stdout   string
	Stderr   string
}

// Supervise blocks until the process exits, draining both output streams
// while it runs, and classifies the termination. A failure to wait on the
// process itself (as opposed to the process exiting badly) is returned as an
// error wrapping ErrProcessWait.
func Supervise(ctx context.Context, proc *Process) (Result, error) {
	logger := ctxlog.FromContext(ctx)

	var stdout, stderr bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go drain(&wg, &stdout, proc.stdout)
	go drain(&wg, &stderr, proc.stderr)

	// The pipes must be fully drained before Wait closes them.
	wg.Wait()
	err := proc.cmd.Wait()

	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			// Not a process exit at all: the wait itself failed.
			return Result{}, fmt.Errorf("%w: %v", ErrProcessWait, err)
		}
		exitCode = exitErr.ExitCode()
		if exitCode < 0 {
			// Signal death on unix reports -1; recover the conventional
			// 128+signal code so classification sees what a shell would.
			if status, ok := exitStatus(exitErr); ok {
				exitCode = status
			}
		}
	}

	outcome := ClassifyExitCode(exitCode)
	result := Result{
		ExitCode: exitCode,
		Outcome:  outcome,
		Cause:    ClassifyOutput(stderr.String(), outcome),
		Stdout:   trimCaptured(stdout.String()),
		Stderr:   trimCaptured(stderr.String()),
	}

	logger.Info("Game process exited.",
		"exitCode", result.ExitCode,
		"outcome", result.Outcome,
		"cause", result.Cause)
	return result, nil
}

// drain copies a stream to its capture buffer until EOF.
func drain(wg *sync.WaitGroup, dst *bytes.Buffer, src io.Reader) {
	defer wg.Done()
	_, _ = io.Copy(dst, src)
}

// trimCaptured trims whitespace and keeps only the tail of oversized output.
func trimCaptured(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxCapturedOutput {
		s = s[len(s)-maxCapturedOutput:]
	}
	return s
}
