package invoke

import "fmt"

// CommandError reports an external command that exited non-zero or could not
// be started. Stderr is carried verbatim: almost every failure in this tool
// originates from the wrapped binary, and its message is the one the operator
// needs to see.
type CommandError struct {
	Command  string // full command line
	ExitCode int    // -1 when the process could not be started
	Stderr   string
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: exit status %d\n%s", e.Command, e.ExitCode, e.Stderr)
}

// ParseError reports command output, or a stored copy of it, that could not
// be decoded even though the producing command succeeded.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
