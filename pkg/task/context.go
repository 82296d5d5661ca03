package task

import (
	"log/slog"

	"github.com/tombee/runbook/pkg/diag"
)

// Context is the execution context shared by every DynamicValue
// evaluated within one run. It carries variable bindings, callable
// administration primitives, the transfer variable list, and the
// diagnostic recorder.
//
// A single Context is shared by reference across the whole run: values
// written by one step are visible to every subsequent expression. The
// engine is single-threaded, so no synchronization is applied.
type Context struct {
	vars     *TransferVariableList
	bindings map[string]interface{}
	funcs    map[string]interface{}
	recorder diag.Recorder
}

// NewContext creates an execution context with an empty transfer
// variable list and the default diagnostic recorder.
func NewContext() *Context {
	return &Context{
		vars:     NewTransferVariableList(),
		bindings: make(map[string]interface{}),
		funcs:    make(map[string]interface{}),
		recorder: diag.NewRecorder(slog.Default()),
	}
}

// WithRecorder replaces the diagnostic recorder.
func (c *Context) WithRecorder(r diag.Recorder) *Context {
	if r != nil {
		c.recorder = r
	}
	return c
}

// Recorder returns the diagnostic recorder for this run.
func (c *Context) Recorder() diag.Recorder {
	return c.recorder
}

// Vars returns the transfer variable list carried by this context.
func (c *Context) Vars() *TransferVariableList {
	return c.vars
}

// Bind sets a named value visible to expressions at the environment root.
func (c *Context) Bind(name string, value interface{}) {
	c.bindings[name] = value
}

// RegisterFunc exposes a callable to expressions under the given name.
// Administration primitives are registered this way; the engine treats
// their results generically as success or fault.
func (c *Context) RegisterFunc(name string, fn interface{}) {
	c.funcs[name] = fn
}

// Env builds the expression environment for a single invocation.
//
// It is rebuilt from the live context on every call so that transfer
// variables appended by earlier steps are visible to later ones.
// Besides bindings and registered primitives, the environment exposes:
//
//   - vars: last-write-wins snapshot of the transfer variable list
//   - set(name, value): appends a transfer variable and returns the value
//   - get(name): looks up a transfer variable (nil when absent)
func (c *Context) Env() map[string]interface{} {
	env := make(map[string]interface{}, len(c.bindings)+len(c.funcs)+3)
	for k, v := range c.bindings {
		env[k] = v
	}
	for k, v := range c.funcs {
		env[k] = v
	}

	env["vars"] = c.vars.Snapshot()
	env["set"] = func(name string, value interface{}) interface{} {
		c.vars.Append(name, value)
		return value
	}
	env["get"] = func(name string) interface{} {
		v, _ := c.vars.Lookup(name)
		return v
	}

	return env
}
