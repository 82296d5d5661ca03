package expression

import "fmt"

// EmptyExpressionError indicates expression text that was empty or
// whitespace after trimming.
type EmptyExpressionError struct{}

// Error implements the error interface.
func (e *EmptyExpressionError) Error() string {
	return "expression text is empty"
}

// CompileError indicates expression text that failed to parse.
// It carries the original source text and the parser diagnostic.
type CompileError struct {
	// Source is the original expression text as supplied by the caller
	Source string

	// Cause is the parser diagnostic
	Cause error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("failed to compile expression %q: %s", e.Source, e.Cause)
}

// Unwrap returns the parser diagnostic for errors.Is/As support.
func (e *CompileError) Unwrap() error {
	return e.Cause
}
