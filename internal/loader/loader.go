// Package loader reads YAML runbook definitions and builds executable
// task pipelines from them.
//
// All expression text compiles at load time, so malformed expressions
// fail before anything runs.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tombee/runbook/pkg/errors"
	"github.com/tombee/runbook/pkg/task"
	"github.com/tombee/runbook/pkg/task/expression"
)

// Definition represents a YAML runbook definition: an ordered pipeline
// of task definitions plus seed variables.
type Definition struct {
	// Name is the runbook identifier
	Name string `yaml:"name"`

	// Description provides human-readable context about the runbook
	Description string `yaml:"description,omitempty"`

	// Vars seed the transfer variable list before the first task runs
	Vars map[string]interface{} `yaml:"vars,omitempty"`

	// Tasks are the pipeline members in execution order
	Tasks []TaskDefinition `yaml:"tasks"`
}

// TaskDefinition represents a single task in a runbook.
// All expression fields hold raw expression text.
type TaskDefinition struct {
	// Name is the task identifier within this runbook
	Name string `yaml:"name"`

	// Intro is an informational message expression evaluated first
	Intro string `yaml:"intro,omitempty"`

	// PreConditions gate execution; all of them always run
	PreConditions []string `yaml:"preconditions,omitempty"`

	// Steps run in order, stopping at the first failure
	Steps []string `yaml:"steps,omitempty"`

	// PostConditions verify the outcome without gating it
	PostConditions []string `yaml:"postconditions,omitempty"`

	// Exit is an informational message expression evaluated last
	Exit string `yaml:"exit,omitempty"`
}

// Load reads and parses a runbook definition from a file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.ConfigError{Reason: "failed to read runbook file", Cause: err}
	}
	return Parse(data)
}

// Parse parses and validates a runbook definition from YAML bytes.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, &errors.ConfigError{Reason: "failed to parse runbook YAML", Cause: err}
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks structural constraints before any expression compiles.
func (d *Definition) Validate() error {
	if d.Name == "" {
		return &errors.ValidationError{
			Field:      "name",
			Message:    "runbook name is required",
			Suggestion: "add a top-level 'name' field",
		}
	}
	if len(d.Tasks) == 0 {
		return &errors.ValidationError{
			Field:      "tasks",
			Message:    "at least one task is required",
			Suggestion: "add a 'tasks' list with at least one entry",
		}
	}

	seen := make(map[string]bool, len(d.Tasks))
	for i, t := range d.Tasks {
		if t.Name == "" {
			return &errors.ValidationError{
				Field:   fmt.Sprintf("tasks[%d].name", i),
				Message: "task name is required",
			}
		}
		if seen[t.Name] {
			return &errors.ValidationError{
				Field:      fmt.Sprintf("tasks[%d].name", i),
				Message:    fmt.Sprintf("duplicate task name %q", t.Name),
				Suggestion: "task names must be unique within a runbook",
			}
		}
		seen[t.Name] = true
	}
	return nil
}

// Build compiles every expression and assembles the task pipeline.
// Seed variables go onto the supplied context.
func (d *Definition) Build(ctx *task.Context) (*task.TaskList, error) {
	for name, value := range d.Vars {
		ctx.Vars().Append(name, value)
	}

	list := task.NewTaskList()
	for _, td := range d.Tasks {
		t, err := buildTask(td)
		if err != nil {
			return nil, err
		}
		list.Append(t)
	}
	return list, nil
}

// buildTask populates an empty task from its definition.
func buildTask(td TaskDefinition) (*task.Task, error) {
	t := task.NewTask(td.Name)

	if td.Intro != "" {
		e, err := compileField(td.Name, "intro", td.Intro)
		if err != nil {
			return nil, err
		}
		t.IntroMessage.SetExpression(e)
	}

	for i, text := range td.PreConditions {
		e, err := compileField(td.Name, fmt.Sprintf("preconditions[%d]", i), text)
		if err != nil {
			return nil, err
		}
		v := task.NewDynamicValue()
		v.SetExpression(e)
		t.PreConditions.Append(v)
	}

	for i, text := range td.Steps {
		e, err := compileField(td.Name, fmt.Sprintf("steps[%d]", i), text)
		if err != nil {
			return nil, err
		}
		v := task.NewDynamicValue()
		v.SetExpression(e)
		t.TaskSteps.Append(v)
	}

	for i, text := range td.PostConditions {
		e, err := compileField(td.Name, fmt.Sprintf("postconditions[%d]", i), text)
		if err != nil {
			return nil, err
		}
		v := task.NewDynamicValue()
		v.SetExpression(e)
		t.PostConditions.Append(v)
	}

	if td.Exit != "" {
		e, err := compileField(td.Name, "exit", td.Exit)
		if err != nil {
			return nil, err
		}
		t.ExitMessage.SetExpression(e)
	}

	return t, nil
}

// compileField compiles one expression field, attributing failures to
// their position in the definition.
func compileField(taskName, field, text string) (*expression.Expression, error) {
	e, err := expression.Compile(text)
	if err != nil {
		return nil, errors.Wrapf(err, "task %q %s", taskName, field)
	}
	return e, nil
}
