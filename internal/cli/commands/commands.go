package commands

import (
	"io"

	"libtest/internal/cli"
	"libtest/internal/config"
	"libtest/internal/discovery"
	"libtest/internal/execution"
	"libtest/internal/storage"
	"libtest/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config, out, errOut io.Writer) *Commands {
	// Initialize dependencies
	process := execution.NewExecRunner()
	filter := discovery.NewFilter()
	presence := discovery.NewPresenceChecker()
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg, presence, out)
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, process, filter, jsonStorage, formatter, out, errOut),
		List:     NewListCommand(cfg, filter, formatter, errOut),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra. The root command itself
// behaves like "run" so the harness can be invoked without a sub-command.
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	applyFlags := func(cmd *cobra.Command, args []string) error {
		// Update config with flags after parsing
		return cfg.ApplyFlags(flags.ToConfigFlags())
	}

	rootCmd.RunE = c.Run.Execute
	rootCmd.PreRunE = applyFlags
	rootCmd.Args = cobra.NoArgs
	registerRunFlags(rootCmd, flags)

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Compile and valgrind-check every library in the list",
		Long:    "Check each library's source, header and test driver, compile them with strict warnings and run the test binary under valgrind",
		Args:    cobra.NoArgs,
		RunE:    c.Run.Execute,
		PreRunE: applyFlags,
	}
	registerRunFlags(runCmd, flags)
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List libraries and their file status",
		Long:    "Read the library list and show which libraries have a complete source/header/test triple, without compiling anything",
		Args:    cobra.NoArgs,
		RunE:    c.List.Execute,
		PreRunE: applyFlags,
	}
	registerSelectionFlags(listCmd, flags)
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View failed libraries interactively",
		Long:  "Display the libraries that did not pass in the last run, with the failing command and its captured output",
		Args:  cobra.NoArgs,
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}

func registerSelectionFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.LibFile, "libfile", "l", config.DefaultLibFile, "File indicating all libraries to be tested")
	cmd.Flags().StringVar(&flags.Profile, "profile", config.DefaultProfile, "Operating mode: \"lib\" tests the current directory, \"src\" tests ../src/lib with debug logs enabled")
	cmd.Flags().StringVar(&flags.Dir, "dir", "", "Override the target directory of the selected profile")
	cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter libraries by name pattern (supports wildcards, e.g. 'hash*')")
}

func registerRunFlags(cmd *cobra.Command, flags *cli.Flags) {
	registerSelectionFlags(cmd, flags)
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose output")
	cmd.Flags().BoolVar(&flags.Progress, "progress", false, "Show a progress bar on stderr (ignored with --verbose)")
	cmd.Flags().BoolVar(&flags.Strict, "strict", false, "Exit with a non-zero status when any library does not pass")
	cmd.Flags().BoolVar(&flags.Summary, "summary", false, "Print a summary table after the run")
}
