// Package open selects the platform command used to open a file or URL.
package open

import (
	"fmt"
	"strings"
)

// Kind is a platform opener.
type Kind int

// Supported openers.
const (
	// XdgOpen relies on "xdg-open", found on Linux and most other Unix desktops.
	XdgOpen Kind = iota

	// Open relies on the macOS "open" command.
	Open

	// Start relies on the "start" builtin of the Windows command interpreter.
	Start
)

// Kinds lists all supported openers.
var Kinds = []Kind{XdgOpen, Open, Start}

// Command is a program along with its arguments.
type Command struct {
	Program string
	Args    []string
}

// String returns the command as it would be typed in a shell, without quoting.
func (c Command) String() string {
	return strings.Join(append([]string{c.Program}, c.Args...), " ")
}

// Cmd returns the command opening target with the given opener.
func (k Kind) Cmd(target string) Command {
	switch k {
	case Open:
		return Command{Program: "open", Args: []string{target}}
	case Start:
		// cmd.exe parses its command line itself, the runner quotes target when spawning.
		return Command{Program: "cmd", Args: []string{"/c", "start", target}}
	default:
		return Command{Program: "xdg-open", Args: []string{target}}
	}
}

// String returns the name of the opener, as accepted by ParseKind.
func (k Kind) String() string {
	switch k {
	case XdgOpen:
		return "xdg-open"
	case Open:
		return "open"
	case Start:
		return "start"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the opener for a given name.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown opener '%s', expected one of xdg-open, open, start", name)
}
