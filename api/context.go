// Package api defines the interfaces commands rely on.
package api

import (
	"io"

	"github.com/open-here/open-here/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Context contains abstractions for stdout/stderr, the filesystem, and the CLI environment in general.
// It also acts as a factory for the configuration.
type Context interface {

	// Args returns the command-line arguments, starting by the program name.
	Args() []string

	// Out returns a writer for CLI output.
	Out() io.Writer

	// ErrOut returns a writer for CLI errors, logs, and informational messages.
	ErrOut() io.Writer

	// EnvLookup lookups environment variables.
	EnvLookup(key string) (string, bool)

	// Fs returns the filesystem.
	Fs() afero.Fs

	// Logger returns the CLI logger.
	Logger() *logrus.Logger

	// Dir returns the configuration directory for open-here.
	Dir() (string, error)

	// Config returns the open-here configuration.
	Config() (*config.Config, error)
}
