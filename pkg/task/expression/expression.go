// Package expression compiles raw expression text into immutable,
// reusable programs.
//
// Expressions are the deferred unit of work in a runbook: conditions,
// steps, and messages are all expression text compiled once and invoked
// on demand against an execution environment. The same compiled
// Expression can be invoked many times against different environments.
package expression

import (
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expression is the immutable compiled form of expression source text.
type Expression struct {
	source  string
	program *vm.Program
}

// Compile turns raw expression text into an Expression.
//
// The text is trimmed before compilation. Returns EmptyExpressionError
// when nothing remains after trimming, or CompileError (carrying the
// original text and the parser diagnostic) when the text fails to parse.
//
// Compile is pure and stateless: identical text always produces an
// equivalent program, and the returned Expression holds no reference to
// any execution environment.
func Compile(text string) (*Expression, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &EmptyExpressionError{}
	}

	// Identifiers resolve at invocation time against whatever environment
	// the caller supplies, so compilation cannot pin a variable set.
	program, err := expr.Compile(trimmed,
		expr.Env(map[string]interface{}{}),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, &CompileError{Source: text, Cause: err}
	}

	return &Expression{
		source:  trimmed,
		program: program,
	}, nil
}

// MustCompile is like Compile but panics on error.
// Intended for fixed expression text in tests and examples.
func MustCompile(text string) *Expression {
	e, err := Compile(text)
	if err != nil {
		panic(err)
	}
	return e
}

// Source returns the trimmed source text the Expression was compiled from.
func (e *Expression) Source() string {
	return e.source
}

// Invoke runs the compiled program against the given environment and
// returns whatever value the expression produced. The environment
// typically contains variable bindings plus callable administration
// primitives; Invoke treats both generically.
func (e *Expression) Invoke(env map[string]interface{}) (interface{}, error) {
	return expr.Run(e.program, env)
}
