package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter prints the line-oriented per-library messages of a run
type Reporter struct {
	out     io.Writer
	errOut  io.Writer
	verbose bool

	pass *color.Color
	fail *color.Color
	warn *color.Color
	cmd  *color.Color
}

// NewReporter creates a Reporter writing messages to out and warnings to errOut
func NewReporter(out, errOut io.Writer, verbose bool) *Reporter {
	return &Reporter{
		out:     out,
		errOut:  errOut,
		verbose: verbose,
		pass:    color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		cmd:     color.New(color.FgCyan),
	}
}

// Verbose reports whether commands and child output are shown
func (r *Reporter) Verbose() bool { return r.verbose }

// Out is where verbose child stdout flows
func (r *Reporter) Out() io.Writer { return r.out }

// ErrOut is where verbose child stderr flows
func (r *Reporter) ErrOut() io.Writer { return r.errOut }

// Command prints a command line before it is executed, in verbose mode only
func (r *Reporter) Command(line string) {
	if r.verbose {
		r.cmd.Fprintln(r.out, line)
	}
}

// Unavailable reports a required tool that cannot be invoked
func (r *Reporter) Unavailable(tool string) {
	r.fail.Fprintf(r.out, "Program unavailable: %s\n", tool)
}

// Missing reports a library whose file triple is incomplete
func (r *Reporter) Missing(name string) {
	r.warn.Fprintf(r.out, "Missing files for library: %s\n", name)
}

// CompileFailed reports a library whose compile step exited non-zero
func (r *Reporter) CompileFailed(name string) {
	r.fail.Fprintf(r.out, "Compilation error for library: %s\n", name)
}

// CheckFailed reports a library whose instrumented run exited non-zero
func (r *Reporter) CheckFailed(name string) {
	r.fail.Fprintf(r.out, "Valgrind failed for library: %s\n", name)
}

// Passed reports a library that compiled and ran cleanly.
// Verbose mode separates it from the surrounding child output with blank lines.
func (r *Reporter) Passed(name string) {
	if r.verbose {
		fmt.Fprintln(r.out)
	}
	r.pass.Fprintf(r.out, "Tests passed: %s\n", name)
	if r.verbose {
		fmt.Fprintln(r.out)
	}
}

// Warning prints a non-fatal problem to the error stream
func (r *Reporter) Warning(format string, args ...interface{}) {
	r.warn.Fprintf(r.errOut, "Warning: "+format+"\n", args...)
}
