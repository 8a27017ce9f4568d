//go:build unix

package launch

import (
	"os/exec"
	"syscall"
)

// SpawnDetached starts argv in its own session with stdio detached and does
// not wait for it. The child outlives the launcher and its terminal.
func SpawnDetached(argv []string, dir string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	// Nobody waits on the child; init reaps it once we exit.
	return start(cmd)
}
