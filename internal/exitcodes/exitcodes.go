// Package exitcodes defines the process exit codes used by libtest.
package exitcodes

import "fmt"

// Exit code constants used by libtest:
//
// * Success (0): the run completed; with the default pass-through behaviour
//   this includes runs where libraries failed
// * RuntimeErr (1): operational errors such as an unreadable library list
// * ToolUnavailable (2): the compiler or the memory checker cannot be invoked
// * TestFailure (3): at least one library did not pass and --strict was given
const (
	Success         = 0
	RuntimeErr      = 1
	ToolUnavailable = 2
	TestFailure     = 3
)

// Error carries an exit code from a command to main.
// Its message has already been shown to the user when Silent is set.
type Error struct {
	Code   int
	Err    error
	Silent bool
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Silent wraps err with an exit code; main prints nothing further
func Silent(code int, err error) *Error {
	return &Error{Code: code, Err: err, Silent: true}
}
