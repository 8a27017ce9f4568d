//go:build windows

package launch

import (
	"os/exec"
	"syscall"
)

// SpawnDetached starts argv without a console and does not wait for it.
func SpawnDetached(argv []string, dir string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}

	return start(cmd)
}
