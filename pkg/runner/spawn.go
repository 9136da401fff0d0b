package runner

import (
	"os/exec"

	"github.com/sirupsen/logrus"
)

// start starts execCmd and reaps it in the background.
// The exit status is only logged, openers often exit before the application is up.
func start(execCmd *exec.Cmd, logger *logrus.Logger) error {
	if err := execCmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := execCmd.Wait(); err != nil {
			logger.Debugf("%s: %s", execCmd.Path, err)
		}
	}()
	return nil
}
