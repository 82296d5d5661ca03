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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/runbook/pkg/task"
)

// execute runs the command under a minimal root carrying the global
// logging flags, capturing stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := &cobra.Command{Use: "runbook", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("log-level", "error", "")
	root.PersistentFlags().String("log-format", "json", "")
	root.AddCommand(NewCommand())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeRunbook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunCommand_Success(t *testing.T) {
	path := writeRunbook(t, `
name: greet
tasks:
  - name: hello
    steps:
      - 'set("who", "world")'
    exit: '"hello " + vars.who'
`)

	out, err := execute(t, "run", path)
	require.NoError(t, err)
	assert.Contains(t, out, "completed")
	assert.Contains(t, out, "hello world")
}

func TestRunCommand_FailedTaskSetsExitError(t *testing.T) {
	path := writeRunbook(t, `
name: failing
tasks:
  - name: broken
    steps:
      - 'undefinedPrimitive()'
  - name: still-runs
    steps:
      - 'set("ran", true)'
`)

	out, err := execute(t, "run", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed tasks")
	// The pipeline keeps running past the failure.
	assert.Contains(t, out, "still-runs")
}

func TestRunCommand_JSONReport(t *testing.T) {
	path := writeRunbook(t, `
name: greet
tasks:
  - name: hello
    steps:
      - '1'
`)

	out, err := execute(t, "run", path, "--report", "json")
	require.NoError(t, err)

	var report task.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Tasks, 1)
	assert.Equal(t, task.StatusCompleted, report.Tasks[0].Status)
}

func TestRunCommand_SeedVars(t *testing.T) {
	path := writeRunbook(t, `
name: greet
vars:
  who: nobody
tasks:
  - name: hello
    exit: '"hello " + vars.who'
`)

	out, err := execute(t, "run", path, "--var", "who=ops")
	require.NoError(t, err)
	assert.Contains(t, out, "hello ops", "--var must win over definition seeds")
}

func TestRunCommand_InvalidVar(t *testing.T) {
	path := writeRunbook(t, "name: r\ntasks:\n  - name: a\n")

	_, err := execute(t, "run", path, "--var", "novalue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid variable")
}

func TestRunCommand_UnknownReportFormat(t *testing.T) {
	path := writeRunbook(t, "name: r\ntasks:\n  - name: a\n")

	_, err := execute(t, "run", path, "--report", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report format")
}

func TestParseVars(t *testing.T) {
	got, err := parseVars([]string{"a=1", "b=two", "a=3"})
	require.NoError(t, err)
	assert.Equal(t, []task.TransferVariable{
		{Name: "a", Value: "1"},
		{Name: "b", Value: "two"},
		{Name: "a", Value: "3"},
	}, got)
}
