// Package admin provides the administration primitives invoked from
// within runbook expressions: drive space queries, logged-on user, and
// service pool control.
//
// The task engine has no knowledge of these operations. They are exposed
// as callables in the expression environment and their results are
// treated generically as success or fault.
package admin

import (
	"fmt"
	"os/exec"
	"os/user"
	"strconv"
	"strings"
)

// Host is the contract for administration queries and actions.
type Host interface {
	// DriveFreeSpace returns the free space in bytes on the filesystem
	// holding path.
	DriveFreeSpace(path string) (uint64, error)

	// LoggedOnUser returns the name of the user running the pipeline.
	LoggedOnUser() (string, error)

	// RestartServicePool restarts the named service pool.
	RestartServicePool(name string) error

	// ServicePoolState returns the current state of the named pool
	// (e.g. "active", "inactive", "failed").
	ServicePoolState(name string) (string, error)
}

// CommandRunner executes a system command and returns its combined
// output. Injectable for tests.
type CommandRunner func(name string, args ...string) (string, error)

// ExecHost implements Host against the local machine by shelling out to
// system utilities.
type ExecHost struct {
	run CommandRunner
}

// NewExecHost creates a Host backed by local command execution.
func NewExecHost() *ExecHost {
	return &ExecHost{run: runCommand}
}

// WithRunner replaces the command runner. Used by tests.
func (h *ExecHost) WithRunner(run CommandRunner) *ExecHost {
	if run != nil {
		h.run = run
	}
	return h
}

// runCommand is the default CommandRunner.
func runCommand(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// DriveFreeSpace implements Host using df. POSIX output format keeps the
// column layout stable across platforms.
func (h *ExecHost) DriveFreeSpace(path string) (uint64, error) {
	out, err := h.run("df", "-Pk", path)
	if err != nil {
		return 0, err
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		return 0, fmt.Errorf("unexpected df output for %s: %q", path, out)
	}

	// Filesystem 1024-blocks Used Available Capacity Mounted on
	fields := strings.Fields(lines[1])
	if len(fields) < 4 {
		return 0, fmt.Errorf("unexpected df output for %s: %q", path, lines[1])
	}

	kb, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing df available column %q: %w", fields[3], err)
	}
	return kb * 1024, nil
}

// LoggedOnUser implements Host via the process owner.
func (h *ExecHost) LoggedOnUser() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// RestartServicePool implements Host via systemctl.
func (h *ExecHost) RestartServicePool(name string) error {
	_, err := h.run("systemctl", "restart", name)
	return err
}

// ServicePoolState implements Host via systemctl.
func (h *ExecHost) ServicePoolState(name string) (string, error) {
	// is-active exits nonzero for inactive units but still prints the
	// state, so the state string wins over the exit status.
	out, err := h.run("systemctl", "is-active", name)
	state := strings.TrimSpace(out)
	if state != "" {
		return state, nil
	}
	if err != nil {
		return "", err
	}
	return state, nil
}

// Funcs exposes the primitives of a Host as expression callables:
//
//	driveFreeSpace(path)  loggedOnUser()
//	restartPool(name)     poolState(name)
//
// Register the returned map on an execution context so compiled
// expressions can invoke the primitives as ordinary calls.
func Funcs(h Host) map[string]interface{} {
	return map[string]interface{}{
		"driveFreeSpace": func(path string) (uint64, error) {
			return h.DriveFreeSpace(path)
		},
		"loggedOnUser": func() (string, error) {
			return h.LoggedOnUser()
		},
		"restartPool": func(name string) (bool, error) {
			if err := h.RestartServicePool(name); err != nil {
				return false, err
			}
			return true, nil
		},
		"poolState": func(name string) (string, error) {
			return h.ServicePoolState(name)
		},
	}
}
