package timeshift

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// Result is the captured outcome of one external command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// Runner executes an external command to completion.
//
// Run returns a nil error whenever the process exited on its own, whatever
// its exit status. A non-nil error means the process could not be started or
// did not exit normally.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// Run starts name with args and waits for it, capturing both streams.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	start := time.Now()
	err := cmd.Run()

	res := Result{
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
		Duration: time.Since(start),
	}

	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Exited() {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		res.ExitCode = -1
		return res, fmt.Errorf("process terminated abnormally: %w", err)
	}

	res.ExitCode = -1
	return res, err
}

var _ Runner = ExecRunner{}
