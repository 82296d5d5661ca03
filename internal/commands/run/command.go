// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package run

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/runbook/internal/cli"
	"github.com/tombee/runbook/internal/loader"
	"github.com/tombee/runbook/pkg/admin"
	"github.com/tombee/runbook/pkg/diag"
	"github.com/tombee/runbook/pkg/errors"
	"github.com/tombee/runbook/pkg/task"
)

// NewCommand creates the run command.
func NewCommand() *cobra.Command {
	var (
		vars         []string
		reportFormat string
	)

	cmd := &cobra.Command{
		Use:   "run <runbook>",
		Short: "Execute a runbook",
		Long: `Run executes every task of a runbook in declared order.

A failing task is recorded and the remaining pipeline keeps running;
the exit status reflects the final report. Variables passed with --var
seed the transfer variable list consulted by task expressions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.NewLogger(cmd)

			def, err := loader.Load(args[0])
			if err != nil {
				return err
			}

			ctx := task.NewContext().WithRecorder(diag.NewRecorder(logger))
			for name, fn := range admin.Funcs(admin.NewExecHost()) {
				ctx.RegisterFunc(name, fn)
			}

			seeds, err := parseVars(vars)
			if err != nil {
				return err
			}

			list, err := def.Build(ctx)
			if err != nil {
				return err
			}

			// CLI vars land after definition seeds so they win lookups.
			for _, v := range seeds {
				ctx.Vars().Append(v.Name, v.Value)
			}

			runner := task.NewRunner().WithLogger(logger)
			report := runner.Run(list, ctx)

			if err := printReport(cmd, report, reportFormat); err != nil {
				return err
			}

			if report.Failed() {
				return fmt.Errorf("runbook %q finished with failed tasks", def.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVar(&vars, "var", nil, "Seed variable as name=value (repeatable)")
	cmd.Flags().StringVar(&reportFormat, "report", "text", "Report format (text, json)")

	return cmd
}

// parseVars parses --var name=value pairs in flag order.
func parseVars(pairs []string) ([]task.TransferVariable, error) {
	out := make([]task.TransferVariable, 0, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, &errors.ValidationError{
				Field:      "var",
				Message:    fmt.Sprintf("invalid variable %q", pair),
				Suggestion: "use --var name=value",
			}
		}
		out = append(out, task.TransferVariable{Name: name, Value: value})
	}
	return out, nil
}

// printReport renders the run report to stdout.
func printReport(cmd *cobra.Command, report *task.Report, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(data))
	case "text":
		for _, t := range report.Tasks {
			line := fmt.Sprintf("%-10s %s", t.Status, t.Name)
			if t.Exit != "" {
				line += "  " + t.Exit
			}
			cmd.Println(line)
		}
	default:
		return &errors.ValidationError{
			Field:      "report",
			Message:    fmt.Sprintf("unknown report format %q", format),
			Suggestion: "use 'text' or 'json'",
		}
	}
	return nil
}
