package executor

// StatementError marks a failure while executing one statement of a script.
// Its message is the underlying error's.
type StatementError struct {
	Index   int    // position of the statement in the script
	Command string // as printed in "Command: <name> statement"
	Err     error
}

func (e *StatementError) Error() string { return e.Err.Error() }

func (e *StatementError) Unwrap() error { return e.Err }
