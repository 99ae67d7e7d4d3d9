package goalexpr

import "fmt"

// CompileError is the single failure kind raised while compiling a goal
// expression. Cause describes what went wrong in the terms of the
// expression text. Evaluation never produces errors.
type CompileError struct {
	Cause string
}

func (e *CompileError) Error() string {
	return "invalid expression: " + e.Cause
}

func errorf(format string, args ...any) *CompileError {
	return &CompileError{Cause: fmt.Sprintf(format, args...)}
}
