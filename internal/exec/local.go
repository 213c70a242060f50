// Package exec runs local helper commands with bounded execution time.
package exec

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	sderrors "github.com/rileyhilliard/streamdash/internal/errors"
)

// Output is the captured result of a finished command.
type Output struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Runner runs a command and captures its output. Tests substitute fakes.
type Runner interface {
	Capture(ctx context.Context, name string, args ...string) (Output, error)
}

// Local runs commands on this machine without a shell, so arguments are
// never re-interpreted.
type Local struct{}

// Capture runs name with args and waits for it to finish or for ctx to end.
// A non-zero exit status is not an error: the command ran, and ExitCode
// reports how it ended. Errors mean the command could not run to completion
// (not found, not executable, killed by ctx).
func (Local) Capture(ctx context.Context, name string, args ...string) (Output, error) {
	var stdout, stderr bytes.Buffer

	command := exec.CommandContext(ctx, name, args...)
	command.Stdout = &stdout
	command.Stderr = &stderr
	// Don't let an orphaned grandchild holding the pipes keep Wait blocked
	// after ctx has fired.
	command.WaitDelay = 500 * time.Millisecond

	start := time.Now()
	runErr := command.Run()
	out := Output{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		out.ExitCode = -1
		if errors.Is(ctxErr, context.Canceled) {
			return out, sderrors.WrapWithCode(ctxErr, sderrors.ErrExec,
				"'"+name+"' was canceled", "")
		}
		return out, sderrors.WrapWithCode(ctxErr, sderrors.ErrExec,
			"'"+name+"' didn't finish in time",
			"Check that the command isn't hanging")
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		out.ExitCode = -1
		return out, sderrors.WrapWithCode(runErr, sderrors.ErrExec,
			"Couldn't run '"+name+"'",
			"Make sure the command exists and is executable.")
	}

	return out, nil
}
