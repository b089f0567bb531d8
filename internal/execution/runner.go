package execution

import (
	"context"
	"errors"
	"os"
	"time"

	"libtest/internal/config"
	"libtest/internal/discovery"
	"libtest/internal/domain"
	"libtest/internal/ui"
)

// Runner drives the per-library pipeline: presence check, compile,
// instrumented run. Libraries are processed one at a time, in list order.
type Runner struct {
	targetDir string
	toolchain *Toolchain
	process   ProcessRunner
	presence  *discovery.PresenceChecker
	reporter  *ui.Reporter
	progress  *ui.ProgressBar
}

// NewRunner creates a new Runner for the libraries of one target directory
func NewRunner(targetDir string, tc config.Toolchain, process ProcessRunner, reporter *ui.Reporter) *Runner {
	return &Runner{
		targetDir: targetDir,
		toolchain: NewToolchain(tc),
		process:   process,
		presence:  discovery.NewPresenceChecker(),
		reporter:  reporter,
	}
}

// SetProgress sets the progress bar updated after each library
func (r *Runner) SetProgress(progress *ui.ProgressBar) {
	r.progress = progress
}

// CheckAvailable checks that the compiler and the memory checker are invocable
func (r *Runner) CheckAvailable(ctx context.Context) error {
	return r.toolchain.CheckAvailable(ctx, r.process)
}

// RunAll runs every library's pipeline and then removes the artifacts the
// run produced. A failing library never stops the run; a cancelled context
// stops it before the next library starts. Cleanup happens either way.
func (r *Runner) RunAll(ctx context.Context, names []string) ([]domain.LibraryResult, time.Duration) {
	startTime := time.Now()

	var results []domain.LibraryResult
	var artifacts []string
	var passed, failed int

	for _, name := range names {
		if ctx.Err() != nil {
			break
		}

		lib := domain.NewLibrary(name, r.targetDir)
		result, compiled := r.runLibrary(ctx, lib)
		if compiled {
			artifacts = append(artifacts, lib.Path(lib.Artifact()))
		}
		results = append(results, result)

		if result.Outcome.Passed() {
			passed++
		} else {
			failed++
		}
		if r.progress != nil {
			r.progress.Update(passed, failed)
		}
	}

	if r.progress != nil {
		r.progress.Finish()
	}

	r.cleanup(artifacts)

	return results, time.Since(startTime)
}

// runLibrary executes the pipeline for one library. The second return value
// reports whether the compile step was attempted and may have left an artifact.
// A stage killed by cancellation is recorded as interrupted and not reported
// as a compile or valgrind failure.
func (r *Runner) runLibrary(ctx context.Context, lib domain.Library) (domain.LibraryResult, bool) {
	start := time.Now()
	result := domain.LibraryResult{Name: lib.Name()}
	finish := func(outcome domain.Outcome) domain.LibraryResult {
		result.Outcome = outcome
		result.Duration = time.Since(start)
		return result
	}

	missing, err := r.presence.Missing(lib)
	if err != nil {
		r.reporter.Warning("%v", err)
	}
	if len(missing) > 0 {
		result.Missing = missing
		r.say(func() { r.reporter.Missing(lib.Name()) })
		return finish(domain.OutcomeSkipped), false
	}

	compile := r.toolchain.CompileCommand(lib)
	res := r.execute(ctx, compile)
	if ctx.Err() != nil {
		result.Command = compile.String()
		return finish(domain.OutcomeInterrupted), true
	}
	if !res.Success {
		result.Command, result.Stdout, result.Stderr = compile.String(), res.Stdout, res.Stderr
		r.say(func() { r.reporter.CompileFailed(lib.Name()) })
		return finish(domain.OutcomeCompileFailed), true
	}

	check := r.toolchain.CheckCommand(lib)
	res = r.execute(ctx, check)
	if ctx.Err() != nil {
		result.Command = check.String()
		return finish(domain.OutcomeInterrupted), true
	}
	if !res.Success {
		result.Command, result.Stdout, result.Stderr = check.String(), res.Stdout, res.Stderr
		r.say(func() { r.reporter.CheckFailed(lib.Name()) })
		return finish(domain.OutcomeCheckFailed), true
	}

	r.say(func() { r.reporter.Passed(lib.Name()) })
	return finish(domain.OutcomePassed), true
}

// execute runs one stage. Verbose mode echoes the command line and lets the
// child's output through; otherwise output is only captured.
func (r *Runner) execute(ctx context.Context, cmd Command) ProcessResult {
	var opts RunOptions
	if r.reporter.Verbose() {
		r.reporter.Command(cmd.String())
		opts = RunOptions{Stdout: r.reporter.Out(), Stderr: r.reporter.ErrOut()}
	}
	return r.process.Run(ctx, cmd, opts)
}

// say prints a message without tearing the progress bar
func (r *Runner) say(print func()) {
	if r.progress != nil {
		r.progress.Clear()
	}
	print()
}

func (r *Runner) cleanup(artifacts []string) {
	for _, path := range artifacts {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			r.reporter.Warning("could not remove %s: %v", path, err)
		}
	}
}
