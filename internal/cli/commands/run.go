package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"libtest/internal/config"
	"libtest/internal/discovery"
	"libtest/internal/domain"
	"libtest/internal/execution"
	"libtest/internal/exitcodes"
	"libtest/internal/storage"
	"libtest/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	process   execution.ProcessRunner
	filter    *discovery.Filter
	storage   storage.Storage
	formatter *ui.Formatter
	out       io.Writer
	errOut    io.Writer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	process execution.ProcessRunner,
	filter *discovery.Filter,
	st storage.Storage,
	formatter *ui.Formatter,
	out io.Writer,
	errOut io.Writer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		process:   process,
		filter:    filter,
		storage:   st,
		formatter: formatter,
		out:       out,
		errOut:    errOut,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	return rc.Run(cmd.Context())
}

// Run checks the toolchain is available, then tests every library of the list in order
func (rc *RunCommand) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	flags := rc.config.Flags
	reporter := ui.NewReporter(rc.out, rc.errOut, flags.Verbose)
	runner := execution.NewRunner(rc.config.TargetDir, rc.config.Toolchain, rc.process, reporter)

	// A missing tool is fatal before any library is attempted
	if err := runner.CheckAvailable(ctx); err != nil {
		var toolErr *execution.ToolUnavailableError
		if errors.As(err, &toolErr) {
			reporter.Unavailable(toolErr.Tool)
			return exitcodes.Silent(exitcodes.ToolUnavailable, err)
		}
		return err
	}

	names, err := discovery.LoadLibraryList(rc.config.LibFile)
	if err != nil {
		return err
	}
	names = rc.filter.FilterByName(names, flags.NameFilter)

	if len(names) == 0 {
		color.New(color.FgYellow).Fprintln(rc.errOut, "No libraries to test")
		return nil
	}

	if flags.Progress && !flags.Verbose {
		runner.SetProgress(ui.NewProgressBar(len(names), rc.errOut))
	}

	results, duration := runner.RunAll(ctx, names)

	meta := domain.NewRunMeta(results, duration)
	meta.Profile = rc.config.Profile
	meta.TargetDir = rc.config.TargetDir
	report := &domain.RunReport{Meta: meta, Details: results}

	if err := rc.storage.Save(report); err != nil && !errors.Is(err, storage.ErrDisabled) {
		reporter.Warning("could not save report: %v", err)
	}

	if flags.Summary {
		rc.formatter.PrintSummary(meta)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("run interrupted: %w", err)
	}

	if flags.Strict && meta.Failed() > 0 {
		return exitcodes.Silent(exitcodes.TestFailure,
			fmt.Errorf("%d of %d libraries did not pass", meta.Failed(), meta.TotalLibraries))
	}

	return nil
}
