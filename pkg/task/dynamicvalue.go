package task

import (
	"fmt"

	"github.com/tombee/runbook/pkg/diag"
	"github.com/tombee/runbook/pkg/task/expression"
)

// DynamicValue is an atomic deferred computation: a compiled expression
// plus the state captured from evaluating it once.
//
// Evaluate never propagates a fault to its caller. Faults are converted
// into a diagnostic record and surfaced through the Error flag, so that
// composing entities (ConditionSet, Task) can evaluate heterogeneous,
// failure-prone expressions without per-step fault handling.
type DynamicValue struct {
	expr *expression.Expression

	// Result is the evaluated value. Defined only when Processed is true
	// and Error is false; inspected by consumers, never by this layer.
	Result interface{}

	// Processed reports whether Evaluate has run. Once true the value's
	// evaluated state is fixed for the run.
	Processed bool

	// Error reports whether the invocation faulted.
	Error bool

	// ErrorDetail is the diagnostic record captured on fault.
	ErrorDetail *diag.Record
}

// NewDynamicValue creates an unevaluated DynamicValue with no expression.
func NewDynamicValue() *DynamicValue {
	return &DynamicValue{}
}

// SetExpression attaches the compiled expression. Builder-time only:
// attach before the first Evaluate.
func (v *DynamicValue) SetExpression(e *expression.Expression) {
	v.expr = e
}

// Expression returns the attached expression, or nil when unset.
func (v *DynamicValue) Expression() *expression.Expression {
	return v.expr
}

// Evaluate invokes the expression against the execution context and
// captures the outcome as state.
//
// With no expression attached the value succeeds trivially (Result
// unset). Evaluate is idempotent: once Processed is set, repeat calls
// return the cached outcome without re-invoking the expression, so
// side-effecting expressions run at most once per value.
func (v *DynamicValue) Evaluate(ctx *Context) {
	if v.Processed {
		return
	}

	if v.expr == nil {
		v.Processed = true
		return
	}

	result, err := v.invoke(ctx)
	if err != nil {
		v.ErrorDetail = ctx.Recorder().Capture("expression evaluation failed", v.expr.Source(), err)
		v.Error = true
		v.Processed = true
		expressionFaults.Inc()
		return
	}

	v.Result = result
	v.Processed = true
}

// invoke runs the expression, converting panics from invoked primitives
// into ordinary errors so the non-propagation contract holds.
func (v *DynamicValue) invoke(ctx *Context) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("expression panicked: %v", r)
		}
	}()
	return v.expr.Invoke(ctx.Env())
}
