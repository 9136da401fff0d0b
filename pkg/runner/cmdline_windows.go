package runner

import (
	"fmt"
	"strings"

	"github.com/open-here/open-here/pkg/open"
)

// isStart reports whether cmd is the `start` builtin run through cmd.exe.
func isStart(cmd open.Command) bool {
	return cmd.Program == "cmd" && len(cmd.Args) == 3 && cmd.Args[0] == "/c" && cmd.Args[1] == "start"
}

// startCmdLine returns the raw command line running `start` on target. cmd.exe
// parses it itself: the target is quoted so that &, |, < and > stay literal, and
// an empty title comes first so that the quoted target isn't taken as the title.
// %NAME% references are still expanded.
func startCmdLine(target string) (string, error) {
	if strings.ContainsAny(target, "\"\r\n") {
		return "", fmt.Errorf("'%s' can't be passed to cmd.exe", target)
	}
	return fmt.Sprintf(`cmd /c start "" "%s"`, target), nil
}
