package execution

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
)

// ProcessResult is the outcome of one external process invocation
type ProcessResult struct {
	Success  bool   // Process exited with status 0
	ExitCode int    // -1 if the process could not be started
	Stdout   string // Captured standard output
	Stderr   string // Captured standard error
	Err      error  // Start or wait error, nil on success
}

// RunOptions controls where a child's output flows besides being captured.
// A nil writer discards that stream.
type RunOptions struct {
	Stdout io.Writer
	Stderr io.Writer
}

// ProcessRunner runs external commands and blocks until they exit
type ProcessRunner interface {
	Run(ctx context.Context, cmd Command, opts RunOptions) ProcessResult
}

// ExecRunner runs commands with os/exec in the current working directory
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and captures both output streams
func (r *ExecRunner) Run(ctx context.Context, cmd Command, opts RunOptions) ProcessResult {
	var stdout, stderr bytes.Buffer

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Stdout = tee(&stdout, opts.Stdout)
	c.Stderr = tee(&stderr, opts.Stderr)

	err := c.Run()

	result := ProcessResult{
		Success:  err == nil,
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Err:      err,
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
	}
	return result
}

func tee(capture *bytes.Buffer, passthrough io.Writer) io.Writer {
	if passthrough == nil {
		return capture
	}
	return io.MultiWriter(capture, passthrough)
}
