package launch

import (
	"os"
	"os/exec"

	"github.com/jiggak/waymenu/internal/logging"
)

// releaseProcess is swapped in tests.
var releaseProcess = (*os.Process).Release

// start runs cmd without waiting for it. Once Start succeeds the program is
// running, so a failed Release is only logged.
func start(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	if err := releaseProcess(cmd.Process); err != nil {
		logging.Errorf("Error %v releasing pid %d", err, cmd.Process.Pid)
	}
	return nil
}
