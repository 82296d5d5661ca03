package task

// Status represents the terminal outcome of a task.
type Status string

const (
	// StatusPending indicates the task has not executed yet.
	StatusPending Status = "pending"
	// StatusCompleted indicates the task ran all steps without failure.
	StatusCompleted Status = "completed"
	// StatusFailed indicates a step failed.
	StatusFailed Status = "failed"
	// StatusSkipped indicates preconditions blocked execution.
	StatusSkipped Status = "skipped"
)

// Task is an ordered unit of work: intro/exit messages, pre/post
// condition sets, and a step sequence, with aggregate Error/Processed
// flags.
//
// A Task is created empty by NewTask, populated by a task-definition
// loader, executed exactly once, then immutable.
type Task struct {
	// Name identifies the task in reports and logs.
	Name string

	// IntroMessage is evaluated first, best-effort; its own failure is
	// informational and never gates the task.
	IntroMessage *DynamicValue

	// PreConditions gate execution. A failing set means a deliberate
	// skip, not a task failure.
	PreConditions *ConditionSet

	// TaskSteps run in order, fail-fast: evaluation stops at the first
	// failing step.
	TaskSteps *DynamicValueList

	// PostConditions run after the steps regardless of step outcome.
	// Advisory verification: a failing set is recorded but never flips
	// Error.
	PostConditions *ConditionSet

	// ExitMessage is evaluated last, best-effort, informational.
	ExitMessage *DynamicValue

	// Error is true iff any step failed.
	Error bool

	// Processed is true once Execute has run.
	Processed bool

	// Skipped is true when preconditions blocked execution.
	Skipped bool
}

// NewTask creates an empty task with all members constructed and
// unevaluated, ready for a definition loader to populate.
func NewTask(name string) *Task {
	return &Task{
		Name:           name,
		IntroMessage:   NewDynamicValue(),
		PreConditions:  NewConditionSet(),
		TaskSteps:      NewDynamicValueList(),
		PostConditions: NewConditionSet(),
		ExitMessage:    NewDynamicValue(),
	}
}

// Execute runs the task state machine against the execution context.
// It never returns an error: all outcomes are captured as task state.
// A task executes exactly once; repeat calls are no-ops.
//
// Order: intro message, precondition gate, steps (fail-fast),
// postconditions (always, advisory), exit message, finalize flags.
func (t *Task) Execute(ctx *Context) {
	if t.Processed {
		return
	}

	t.IntroMessage.Evaluate(ctx)

	t.PreConditions.Evaluate(ctx)
	if !t.PreConditions.Passed {
		// Blocked preconditions are a deliberate skip: the steps stay
		// unevaluated and the task does not count as failed.
		t.Skipped = true
		t.Processed = true
		return
	}

	for _, step := range t.TaskSteps.Values() {
		step.Evaluate(ctx)
		if step.Error {
			t.Error = true
			break
		}
	}

	t.PostConditions.Evaluate(ctx)

	t.ExitMessage.Evaluate(ctx)

	t.Processed = true
}

// Status derives the terminal outcome from the task flags.
func (t *Task) Status() Status {
	switch {
	case !t.Processed:
		return StatusPending
	case t.Skipped:
		return StatusSkipped
	case t.Error:
		return StatusFailed
	default:
		return StatusCompleted
	}
}
