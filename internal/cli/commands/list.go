package commands

import (
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"libtest/internal/config"
	"libtest/internal/discovery"
	"libtest/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
	errOut    io.Writer
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	formatter *ui.Formatter,
	errOut io.Writer,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
		errOut:    errOut,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	names, err := discovery.LoadLibraryList(lc.config.LibFile)
	if err != nil {
		return err
	}

	names = lc.filter.FilterByName(names, lc.config.Flags.NameFilter)

	if len(names) == 0 {
		color.New(color.FgYellow).Fprintln(lc.errOut, "No libraries found")
		return nil
	}

	return lc.formatter.PrintLibraryList(names)
}
