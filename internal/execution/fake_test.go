package execution

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeProcess stands in for gcc and valgrind. Compiling writes the "-o"
// target like a real compiler would; results are chosen per library name.
type fakeProcess struct {
	t           *testing.T
	calls       []Command
	unavailable map[string]bool // tool names whose version check fails
	compileFail map[string]bool // library names that do not compile
	checkFail   map[string]bool // library names that fail under the checker
	onRun       func(cmd Command)
}

func newFakeProcess(t *testing.T) *fakeProcess {
	return &fakeProcess{
		t:           t,
		unavailable: map[string]bool{},
		compileFail: map[string]bool{},
		checkFail:   map[string]bool{},
	}
}

func (f *fakeProcess) Run(ctx context.Context, cmd Command, opts RunOptions) ProcessResult {
	f.calls = append(f.calls, cmd)
	if f.onRun != nil {
		f.onRun(cmd)
	}

	if f.unavailable[cmd.Name] {
		return ProcessResult{ExitCode: -1, Err: os.ErrNotExist}
	}

	output := "ran " + cmd.Name + "\n"
	if opts.Stdout != nil {
		_, _ = opts.Stdout.Write([]byte(output))
	}

	switch cmd.Name {
	case "gcc":
		out := argAfter(cmd.Args, "-o")
		if out == "" {
			return ProcessResult{Success: true, Stdout: output}
		}
		if f.compileFail[libName(out)] {
			return ProcessResult{ExitCode: 1, Stdout: output, Stderr: "error: implicit declaration\n"}
		}
		require.NoError(f.t, os.WriteFile(out, []byte("ELF"), 0755))
	case "valgrind":
		if len(cmd.Args) == 0 {
			return ProcessResult{Success: true, Stdout: output}
		}
		artifact := cmd.Args[len(cmd.Args)-1]
		if strings.HasPrefix(artifact, "-") {
			return ProcessResult{Success: true, Stdout: output}
		}
		if f.checkFail[libName(artifact)] {
			return ProcessResult{ExitCode: 1, Stdout: output, Stderr: "definitely lost: 16 bytes\n"}
		}
	}
	return ProcessResult{Success: true, Stdout: output}
}

func (f *fakeProcess) names() []string {
	var names []string
	for _, c := range f.calls {
		names = append(names, c.Name)
	}
	return names
}

func argAfter(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func libName(artifact string) string {
	base := artifact[strings.LastIndex(artifact, "/")+1:]
	return strings.TrimSuffix(base, ".bin")
}
