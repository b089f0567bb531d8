package execution

import (
	"context"
	"fmt"

	"libtest/internal/config"
	"libtest/internal/domain"
)

// ToolUnavailableError reports a required external program that could not be run
type ToolUnavailableError struct {
	Tool string
	Err  error
}

func (e *ToolUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("program unavailable: %s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("program unavailable: %s", e.Tool)
}

func (e *ToolUnavailableError) Unwrap() error { return e.Err }

// Toolchain builds compiler and memory checker commands for a library
type Toolchain struct {
	cfg config.Toolchain
}

// NewToolchain creates a Toolchain from a private copy of the configuration,
// so later changes to cfg's flag slices are not observed
func NewToolchain(cfg config.Toolchain) *Toolchain {
	return &Toolchain{cfg: cfg.Clone()}
}

// CompileCommand returns the strict compiler invocation producing the library's artifact
func (t *Toolchain) CompileCommand(lib domain.Library) Command {
	args := make([]string, 0, len(t.cfg.CFlags)+5)
	args = append(args, t.cfg.CFlags...)
	if t.cfg.DebugLogs {
		args = append(args, config.DebugLogsDefine)
	}
	args = append(args,
		lib.Path(lib.Source()),
		lib.Path(lib.Tester()),
		"-o", lib.Path(lib.Artifact()),
	)
	return NewCommand(t.cfg.Compiler, args...)
}

// CheckCommand returns the memory checker invocation wrapping the library's artifact
func (t *Toolchain) CheckCommand(lib domain.Library) Command {
	args := make([]string, 0, len(t.cfg.CheckerFlags)+1)
	args = append(args, t.cfg.CheckerFlags...)
	args = append(args, lib.Path(lib.Artifact()))
	return NewCommand(t.cfg.Checker, args...)
}

// CheckAvailable verifies that the compiler and the memory checker can be invoked.
// The first unavailable tool is returned as a *ToolUnavailableError.
func (t *Toolchain) CheckAvailable(ctx context.Context, runner ProcessRunner) error {
	checks := []Command{
		NewCommand(t.cfg.Compiler, t.cfg.CompilerVersionArgs...),
		NewCommand(t.cfg.Checker, t.cfg.CheckerVersionArgs...),
	}
	for _, cmd := range checks {
		result := runner.Run(ctx, cmd, RunOptions{})
		if !result.Success {
			return &ToolUnavailableError{Tool: cmd.Name, Err: result.Err}
		}
	}
	return nil
}
