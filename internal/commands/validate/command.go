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

package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tombee/runbook/internal/loader"
	"github.com/tombee/runbook/pkg/task"
)

// NewCommand creates the validate command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <runbook>",
		Short: "Validate a runbook without executing it",
		Long: `Validate parses a runbook definition and compiles every expression,
reporting structural and syntax problems without running anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := loader.Load(args[0])
			if err != nil {
				return err
			}

			// Build compiles all expression text; the context is discarded.
			if _, err := def.Build(task.NewContext()); err != nil {
				return err
			}

			cmd.Println(fmt.Sprintf("runbook %q is valid (%d tasks)", def.Name, len(def.Tasks)))
			return nil
		},
	}

	return cmd
}
