package execution

import (
	"strconv"
	"strings"
)

// Command is an external program invocation as a discrete argument vector.
// It is never passed through a shell.
type Command struct {
	Name string
	Args []string
}

// NewCommand creates a Command
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Argv returns the program name followed by its arguments
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

// String renders the command line for display. Arguments that a shell
// would split or expand are quoted.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	for _, arg := range c.Argv() {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(arg string) string {
	if arg == "" {
		return `""`
	}
	if strings.ContainsAny(arg, " \t\n\"'\\$`*?[]{}()<>|&;#~!") {
		return strconv.Quote(arg)
	}
	return arg
}
