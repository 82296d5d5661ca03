// Package task provides the declarative execution engine for ordered
// build/release pipelines.
//
// The engine wraps deferred expressions in DynamicValues, gates task
// execution on evaluated pre/post condition sets, and propagates failure
// as state rather than as returned errors: every fault raised by an
// invoked expression is converted to a diagnostic record at the
// DynamicValue boundary, and composing entities inspect the Error flag
// afterward. Nothing in this package halts a run or a process; the outer
// tooling inspects the final report and decides what to surface.
//
// Execution is fully synchronous and single-threaded. Steps and
// conditions run in exactly declared order because later expressions may
// read values written into the shared execution context by earlier ones.
package task
