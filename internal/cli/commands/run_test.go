package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libtest/internal/cli"
	"libtest/internal/config"
	"libtest/internal/discovery"
	"libtest/internal/domain"
	"libtest/internal/execution"
	"libtest/internal/exitcodes"
	"libtest/internal/storage"
	"libtest/internal/ui"
)

func init() {
	color.NoColor = true
}

// stubProcess answers version checks and compiles by writing the "-o" target.
// Tools listed in missing fail every invocation.
type stubProcess struct {
	missing map[string]bool
	calls   []execution.Command
}

func (s *stubProcess) Run(ctx context.Context, cmd execution.Command, opts execution.RunOptions) execution.ProcessResult {
	s.calls = append(s.calls, cmd)
	if s.missing[cmd.Name] {
		return execution.ProcessResult{ExitCode: -1, Err: os.ErrNotExist}
	}
	for i, arg := range cmd.Args {
		if arg == "-o" && i+1 < len(cmd.Args) {
			if err := os.WriteFile(cmd.Args[i+1], []byte("ELF"), 0755); err != nil {
				return execution.ProcessResult{ExitCode: 1, Err: err}
			}
		}
	}
	return execution.ProcessResult{Success: true}
}

type fixture struct {
	cfg     *config.Config
	process *stubProcess
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	cmds    *Commands
}

func newFixture(t *testing.T, libList string) *fixture {
	t.Helper()
	dir := t.TempDir()

	libFile := filepath.Join(dir, "libs.txt")
	require.NoError(t, os.WriteFile(libFile, []byte(libList), 0644))

	cfg := config.New()
	cfg.OutputPath = filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, cfg.ApplyFlags(config.Flags{LibFile: libFile, Dir: dir}))

	f := &fixture{
		cfg:     cfg,
		process: &stubProcess{missing: map[string]bool{}},
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
	}

	st := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, discovery.NewPresenceChecker(), f.out)
	f.cmds = &Commands{
		Run:      NewRunCommand(cfg, f.process, discovery.NewFilter(), st, formatter, f.out, f.errOut),
		List:     NewListCommand(cfg, discovery.NewFilter(), formatter, f.errOut),
		Failures: NewFailuresCommand(cfg, st, ui.NewErrorViewer(st)),
	}
	return f
}

func (f *fixture) library(t *testing.T, name string, files ...string) {
	t.Helper()
	if len(files) == 0 {
		files = domain.NewLibrary(name, f.cfg.TargetDir).Files()
	}
	for _, file := range files {
		require.NoError(t, os.WriteFile(filepath.Join(f.cfg.TargetDir, file), []byte("/* c */\n"), 0644))
	}
}

func (f *fixture) execute(args ...string) error {
	rootCmd := &cobra.Command{Use: "libtest", SilenceErrors: true, SilenceUsage: true}
	rootCmd.SetOut(f.out)
	rootCmd.SetErr(f.errOut)
	var flags cli.Flags
	f.cmds.Register(rootCmd, &flags, f.cfg)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(context.Background())
}

func TestRunCommand_CommentsAndMissingFiles(t *testing.T) {
	f := newFixture(t, "foo\n# bar\n  # disabled\n baz \n")
	f.library(t, "foo")
	f.library(t, "baz", "baz.c", "baz_test.c")

	require.NoError(t, f.cmds.Run.Run(context.Background()))

	assert.Equal(t, "Tests passed: foo\nMissing files for library: baz\n", f.out.String())
	assert.NotContains(t, f.out.String(), "bar")
	assert.NotContains(t, f.out.String(), "disabled")

	matches, _ := filepath.Glob(filepath.Join(f.cfg.TargetDir, "*.bin"))
	assert.Empty(t, matches)
}

func TestRunCommand_ToolUnavailable(t *testing.T) {
	f := newFixture(t, "foo\n")
	f.library(t, "foo")
	f.process.missing["gcc"] = true

	err := f.cmds.Run.Run(context.Background())

	var exitErr *exitcodes.Error
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, exitcodes.ToolUnavailable, exitErr.Code)
	assert.True(t, exitErr.Silent)
	assert.Equal(t, "Program unavailable: gcc\n", f.out.String())
	assert.Len(t, f.process.calls, 1, "no library is attempted after a tool is found unavailable")
}

func TestRunCommand_CheckerUnavailable(t *testing.T) {
	f := newFixture(t, "foo\n")
	f.process.missing["valgrind"] = true

	err := f.cmds.Run.Run(context.Background())

	var exitErr *exitcodes.Error
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, exitcodes.ToolUnavailable, exitErr.Code)
	assert.Equal(t, "Program unavailable: valgrind\n", f.out.String())
}

func TestRunCommand_PassThroughAndStrict(t *testing.T) {
	t.Run("failures do not change the exit status by default", func(t *testing.T) {
		f := newFixture(t, "absent\n")
		assert.NoError(t, f.cmds.Run.Run(context.Background()))
		assert.Equal(t, "Missing files for library: absent\n", f.out.String())
	})

	t.Run("strict turns failures into an exit code", func(t *testing.T) {
		f := newFixture(t, "absent\n")
		f.cfg.Flags.Strict = true

		err := f.cmds.Run.Run(context.Background())

		var exitErr *exitcodes.Error
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, exitcodes.TestFailure, exitErr.Code)
	})

	t.Run("strict with every library passing", func(t *testing.T) {
		f := newFixture(t, "foo\n")
		f.library(t, "foo")
		f.cfg.Flags.Strict = true
		assert.NoError(t, f.cmds.Run.Run(context.Background()))
	})
}

func TestRunCommand_SavesReport(t *testing.T) {
	f := newFixture(t, "foo\nbaz\n")
	f.library(t, "foo")

	require.NoError(t, f.cmds.Run.Run(context.Background()))

	report, err := storage.NewJSONStorage(f.cfg).Load()
	require.NoError(t, err)
	assert.Equal(t, 2, report.Meta.TotalLibraries)
	assert.Equal(t, 1, report.Meta.Passed)
	assert.Equal(t, 1, report.Meta.Skipped)
	assert.Equal(t, config.ProfileLib, report.Meta.Profile)
	require.Len(t, report.Details, 2)
	assert.Equal(t, "baz", report.Details[1].Name)
}

func TestRunCommand_EmptyList(t *testing.T) {
	f := newFixture(t, "# nothing here\n")

	require.NoError(t, f.cmds.Run.Run(context.Background()))

	assert.Empty(t, f.out.String())
	assert.Contains(t, f.errOut.String(), "No libraries to test")
}

func TestRunCommand_MissingLibFile(t *testing.T) {
	f := newFixture(t, "")
	f.cfg.LibFile = filepath.Join(t.TempDir(), "missing.txt")

	err := f.cmds.Run.Run(context.Background())
	assert.ErrorContains(t, err, "missing.txt")
}

func TestRegister_RunFlags(t *testing.T) {
	f := newFixture(t, "foo\n# bar\nbaz\nhashmap\n")
	f.library(t, "foo")
	f.library(t, "hashmap")

	err := f.execute("run", "-l", f.cfg.LibFile, "--dir", f.cfg.TargetDir, "--profile", "src", "-v", "--filter", "hash*")
	require.NoError(t, err)

	assert.True(t, f.cfg.Toolchain.DebugLogs)
	assert.True(t, f.cfg.Flags.Verbose)

	output := f.out.String()
	assert.Contains(t, output, config.DebugLogsDefine)
	assert.Contains(t, output, "\nTests passed: hashmap\n\n")
	assert.NotContains(t, output, "foo")
}

func TestRegister_RootRunsByDefault(t *testing.T) {
	f := newFixture(t, "foo\n")
	f.library(t, "foo")

	err := f.execute("-l", f.cfg.LibFile, "--dir", f.cfg.TargetDir, "--strict")
	require.NoError(t, err)
	assert.Equal(t, "Tests passed: foo\n", f.out.String())
}

func TestRegister_UnknownProfile(t *testing.T) {
	f := newFixture(t, "foo\n")

	err := f.execute("run", "-l", f.cfg.LibFile, "--profile", "nightly")
	assert.ErrorContains(t, err, "nightly")
	assert.Empty(t, f.process.calls)
}

func TestListCommand(t *testing.T) {
	f := newFixture(t, "foo\n# bar\nbaz\n")
	f.library(t, "foo")

	err := f.execute("list", "-l", f.cfg.LibFile, "--dir", f.cfg.TargetDir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(f.out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "├── foo", lines[2])
	assert.Equal(t, "└── baz [missing: baz.c, baz.h, baz_test.c]", lines[3])
	assert.Empty(t, f.process.calls, "list never invokes external tools")
}
