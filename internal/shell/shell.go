// Package shell executes recorded shell-command actions.
package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// DefaultShell is the interpreter used when none is configured.
const DefaultShell = "bash"

// Runner executes command strings through a shell interpreter. It
// implements chain.ShellRunner.
type Runner struct {
	// Shell is the interpreter binary. Empty uses DefaultShell.
	Shell string
}

// Run executes the command via "<shell> -c <command>", inheriting the
// caller's stdout and stderr, and waits for completion. A non-zero exit
// status is an error carrying the command text and the status.
func (r Runner) Run(command string) error {
	bin := r.Shell
	if bin == "" {
		bin = DefaultShell
	}

	cmd := exec.Command(bin, "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("shell command %q exited with %s", command, exitErr.ProcessState)
		}
		return fmt.Errorf("failed to run shell command %q: %w", command, err)
	}
	return nil
}
