package task

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tombee/runbook/internal/log"
)

// TaskList is an ordered pipeline of tasks.
type TaskList struct {
	tasks []*Task
}

// NewTaskList creates an empty pipeline.
func NewTaskList() *TaskList {
	return &TaskList{}
}

// Append adds a task at the end of the pipeline.
func (l *TaskList) Append(t *Task) {
	l.tasks = append(l.tasks, t)
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Tasks returns the tasks in pipeline order. The returned slice is
// shared; callers must not reorder it.
func (l *TaskList) Tasks() []*Task {
	return l.tasks
}

// TaskReport is the recorded outcome of one task.
type TaskReport struct {
	Name       string        `json:"name"`
	Status     Status        `json:"status"`
	Processed  bool          `json:"processed"`
	Error      bool          `json:"error"`
	Skipped    bool          `json:"skipped"`
	PostPassed bool          `json:"post_passed"`
	Intro      string        `json:"intro,omitempty"`
	Exit       string        `json:"exit,omitempty"`
	Duration   time.Duration `json:"duration"`
}

// Report is the ordered outcome of a pipeline run, produced for the
// outer reporting layer. The engine itself draws no conclusions from it.
type Report struct {
	RunID   string       `json:"run_id"`
	Tasks   []TaskReport `json:"tasks"`
	Started time.Time    `json:"started"`
	Elapsed time.Duration `json:"elapsed"`
}

// Failed reports whether any task in the run failed.
func (r *Report) Failed() bool {
	for _, t := range r.Tasks {
		if t.Error {
			return true
		}
	}
	return false
}

// Runner walks a TaskList and executes each task in declared order.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a pipeline runner.
func NewRunner() *Runner {
	return &Runner{logger: slog.Default()}
}

// WithLogger sets a custom logger for the runner.
func (r *Runner) WithLogger(logger *slog.Logger) *Runner {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Run executes every task in declared order against the shared context.
// A task's failure never aborts the remaining pipeline: each task's
// outcome is independent, and the full ordered report is always produced.
func (r *Runner) Run(list *TaskList, ctx *Context) *Report {
	report := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
		Tasks:   make([]TaskReport, 0, list.Len()),
	}

	logger := r.logger.With(slog.String(log.RunIDKey, report.RunID))
	logger.Info("pipeline started", slog.Int("tasks", list.Len()))

	for _, t := range list.Tasks() {
		taskLogger := logger.With(slog.String(log.TaskKey, t.Name))
		taskLogger.Debug("task started")

		started := time.Now()
		t.Execute(ctx)
		elapsed := time.Since(started)

		status := t.Status()
		recordTask(status, elapsed)

		entry := TaskReport{
			Name:       t.Name,
			Status:     status,
			Processed:  t.Processed,
			Error:      t.Error,
			Skipped:    t.Skipped,
			PostPassed: t.PostConditions.Passed,
			Intro:      renderMessage(t.IntroMessage),
			Exit:       renderMessage(t.ExitMessage),
			Duration:   elapsed,
		}
		report.Tasks = append(report.Tasks, entry)

		switch status {
		case StatusFailed:
			taskLogger.Error("task failed",
				slog.Duration("duration", elapsed),
				slog.Any("detail", failureDetail(t)),
			)
		case StatusSkipped:
			taskLogger.Info("task skipped by preconditions", slog.Duration("duration", elapsed))
		default:
			taskLogger.Info("task completed", slog.Duration("duration", elapsed))
		}

		if !t.PostConditions.Passed && status != StatusSkipped {
			taskLogger.Warn("postconditions did not pass")
		}
	}

	report.Elapsed = time.Since(report.Started)
	logger.Info("pipeline finished",
		slog.Duration("duration", report.Elapsed),
		slog.Bool("failed", report.Failed()),
	)

	return report
}

// renderMessage renders an evaluated intro/exit message for the report.
// Unset, faulted, or nil-valued messages render empty.
func renderMessage(v *DynamicValue) string {
	if v == nil || !v.Processed || v.Error || v.Result == nil {
		return ""
	}
	return fmt.Sprint(v.Result)
}

// failureDetail returns the diagnostic of the first failing step.
func failureDetail(t *Task) interface{} {
	for _, step := range t.TaskSteps.Values() {
		if step.Error && step.ErrorDetail != nil {
			return step.ErrorDetail.String()
		}
	}
	return nil
}
