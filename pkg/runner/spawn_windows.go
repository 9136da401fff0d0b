package runner

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/open-here/open-here/pkg/open"
	"github.com/sirupsen/logrus"
)

// spawnDetached starts cmd in a new process group so that it outlives the request.
func spawnDetached(cmd open.Command, logger *logrus.Logger) error {
	execCmd := exec.Command(cmd.Program, cmd.Args...)
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr
	execCmd.SysProcAttr = &syscall.SysProcAttr{CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP}
	if isStart(cmd) {
		cmdLine, err := startCmdLine(cmd.Args[2])
		if err != nil {
			return err
		}
		execCmd.SysProcAttr.CmdLine = cmdLine
	}
	return start(execCmd, logger)
}
