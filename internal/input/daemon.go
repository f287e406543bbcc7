package input

import (
	"fmt"
	"os/exec"
)

// Daemon is a running ydotoold process. Injection only works while it
// is alive, so a run holds one for its whole duration.
type Daemon struct {
	cmd *exec.Cmd
}

// StartDaemon launches ydotoold with a group-accessible socket. The
// caller must arrange for Stop to run on every exit path, typically
// via defer immediately after a successful start.
func StartDaemon() (*Daemon, error) {
	cmd := exec.Command("ydotoold", "-P", "0660")

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start ydotoold: %w", err)
	}
	return &Daemon{cmd: cmd}, nil
}

// Stop forcibly terminates the daemon and reaps the process. It is safe
// to call on a nil Daemon.
func (d *Daemon) Stop() {
	if d == nil || d.cmd.Process == nil {
		return
	}
	_ = d.cmd.Process.Kill()
	_ = d.cmd.Wait()
}
