package cli

import (
	"io"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
)

// Environment variables for the open-here CLI.
const (
	// EnvDir can be used to specify a custom directory for the open-here configuration,
	// which defaults to "~/.open-here".
	EnvDir = "OPEN_HERE_DIR"

	// EnvVerbosity sets the verbosity when no -v flag is given.
	EnvVerbosity = "OPEN_HERE_VERBOSITY"
)

// Environment represents the CLI environment. It contains writers for stdout/stderr,
// functions for environment variables lookup, as well as a filesystem abstraction.
type Environment struct {

	// Args are the command-line arguments, starting by the program name.
	Args []string

	// Out is the writer for CLI output.
	Out io.Writer

	// ErrOut is the writer for CLI errors, logs, and informational messages.
	ErrOut io.Writer

	// EnvLookup lookups environment variables.
	EnvLookup func(key string) (string, bool)

	// HomeDir returns the home directory of the current user.
	HomeDir func() (string, error)

	// Fs is an abstraction for the filesystem.
	Fs afero.Fs
}

// NewOsEnvironment returns an environment backed by the os package.
func NewOsEnvironment() *Environment {
	return &Environment{
		Args:      os.Args,
		Out:       os.Stdout,
		ErrOut:    os.Stderr,
		EnvLookup: os.LookupEnv,
		HomeDir:   homedir.Dir,
		Fs:        afero.NewOsFs(),
	}
}
