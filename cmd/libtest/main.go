package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"libtest/internal/cli"
	"libtest/internal/cli/commands"
	"libtest/internal/config"
	"libtest/internal/exitcodes"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "libtest",
		Short: "Library test automation tool",
		Long: `Compile C libraries with a strict, warnings-as-errors toolchain and run their
test drivers under valgrind. Each name in the library list needs <name>.c,
<name>.h and <name>_test.c in the target directory.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Create config with defaults and .env overrides
	cfg := config.New()
	cfg.LoadEnv(config.DefaultEnvFile)

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg, os.Stdout, os.Stderr)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Execute root command
	return exitCode(rootCmd.ExecuteContext(ctx), os.Stderr)
}

// exitCode maps a command error to the process exit status, printing the
// error unless the command already reported it.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitcodes.Success
	}

	var exitErr *exitcodes.Error
	if errors.As(err, &exitErr) {
		if !exitErr.Silent {
			fmt.Fprintf(stderr, "Error: %v\n", exitErr)
		}
		return exitErr.Code
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitcodes.RuntimeErr
}
