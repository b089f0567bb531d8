package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"libtest/internal/config"
	"libtest/internal/discovery"
	"libtest/internal/domain"
)

// Formatter formats and displays run summaries and library listings
type Formatter struct {
	config   *config.Config
	presence *discovery.PresenceChecker
	out      io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, presence *discovery.PresenceChecker, out io.Writer) *Formatter {
	return &Formatter{
		config:   cfg,
		presence: presence,
		out:      out,
	}
}

// PrintSummary displays the statistics of a finished run
func (f *Formatter) PrintSummary(meta domain.RunMeta) {
	cyan := color.New(color.FgCyan)
	white := color.New(color.FgWhite)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	fmt.Fprintln(f.out)
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                     Library Test Summary                      ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	separator := "├─────────────────────────────────┼─────────────────────────────┤"
	row := func(label string, c *color.Color, value interface{}) {
		fmt.Fprintf(f.out, "│ %-31s │ ", label)
		c.Fprintf(f.out, "%-27v", value)
		fmt.Fprintln(f.out, " │")
	}

	fmt.Fprintln(f.out, "┌─────────────────────────────────┬─────────────────────────────┐")
	row("Profile", white, meta.Profile)
	fmt.Fprintln(f.out, separator)
	row("Target Directory", white, meta.TargetDir)
	fmt.Fprintln(f.out, separator)
	row("Libraries", white, meta.TotalLibraries)
	fmt.Fprintln(f.out, separator)
	row("Passed", green, meta.Passed)
	fmt.Fprintln(f.out, separator)
	row("Missing Files", yellow, meta.Skipped)
	fmt.Fprintln(f.out, separator)
	row("Compilation Errors", red, meta.CompileFailed)
	fmt.Fprintln(f.out, separator)
	row("Valgrind Failures", red, meta.CheckFailed)
	fmt.Fprintln(f.out, separator)
	if meta.Interrupted > 0 {
		row("Interrupted", yellow, meta.Interrupted)
		fmt.Fprintln(f.out, separator)
	}
	row("Duration", white, fmt.Sprintf("%.2fs", meta.DurationSeconds))
	fmt.Fprintln(f.out, "└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Fprintln(f.out)
	if meta.Failed() == 0 {
		green.Fprintln(f.out, "✓ All libraries passed!")
	} else {
		red.Fprintf(f.out, "✗ %d of %d librar%s did not pass\n", meta.Failed(), meta.TotalLibraries, plural(meta.TotalLibraries))
	}
}

// PrintLibraryList prints the libraries of the list file as a tree, marking
// the ones whose file triple is incomplete in the target directory.
func (f *Formatter) PrintLibraryList(names []string) error {
	color.New(color.FgGreen).Fprintf(f.out, "Found %d librar%s in %s:\n\n", len(names), plural(len(names)), f.config.TargetDir)

	for i, name := range names {
		lib := domain.NewLibrary(name, f.config.TargetDir)
		missing, err := f.presence.Missing(lib)
		if err != nil {
			return err
		}

		branch := "├── "
		if i == len(names)-1 {
			branch = "└── "
		}

		if len(missing) == 0 {
			color.New(color.FgCyan).Fprintf(f.out, "%s%s\n", branch, name)
			continue
		}
		fmt.Fprintf(f.out, "%s%s %s\n", branch, color.CyanString(name),
			color.RedString("[missing: %s]", strings.Join(missing, ", ")))
	}

	return nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
