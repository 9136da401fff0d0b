//go:build !windows

package runner

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/open-here/open-here/pkg/open"
	"github.com/sirupsen/logrus"
)

// spawnDetached starts cmd in its own session so that it outlives the request.
func spawnDetached(cmd open.Command, logger *logrus.Logger) error {
	execCmd := exec.Command(cmd.Program, cmd.Args...)
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	execCmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	return start(execCmd, logger)
}
