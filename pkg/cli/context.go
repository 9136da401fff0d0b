package cli

import (
	"errors"
	"io"
	"path/filepath"

	"github.com/open-here/open-here/pkg/config"
	"github.com/open-here/open-here/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Context contains abstractions for stdout/stderr, the filesystem, and the CLI environment in general.
// It also acts as a factory for the configuration and the logger.
type Context struct {
	env    *Environment
	logger *logrus.Logger
}

// NewContext returns a new context for a given environment.
func NewContext(env *Environment) *Context {
	return &Context{
		env: env,
		logger: &logrus.Logger{
			Out:       env.ErrOut,
			Formatter: &log.Formatter{},
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.ErrorLevel,
		},
	}
}

// Args returns the command-line arguments, starting by the program name.
func (ctx *Context) Args() []string {
	return ctx.env.Args
}

// Out returns the writer for CLI output.
func (ctx *Context) Out() io.Writer {
	return ctx.env.Out
}

// ErrOut returns the writer for CLI errors, logs, and informational messages.
func (ctx *Context) ErrOut() io.Writer {
	return ctx.env.ErrOut
}

// EnvLookup lookups environment variables.
func (ctx *Context) EnvLookup(key string) (string, bool) {
	return ctx.env.EnvLookup(key)
}

// Fs returns the filesystem.
func (ctx *Context) Fs() afero.Fs {
	return ctx.env.Fs
}

// Logger returns the CLI logger.
func (ctx *Context) Logger() *logrus.Logger {
	return ctx.logger
}

// Dir returns the configuration directory for open-here.
// It defaults to `~/.open-here` and can be overridden by the `OPEN_HERE_DIR` env var.
func (ctx *Context) Dir() (string, error) {
	if dir, ok := ctx.env.EnvLookup(EnvDir); ok {
		return filepath.Abs(dir)
	}
	if ctx.env.HomeDir == nil {
		return "", errors.New("couldn't determine the home directory")
	}
	homeDir, err := ctx.env.HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".open-here"), nil
}

// Config loads the configuration from "config.toml" in the configuration directory.
// When that directory can't be determined, only environment variables are considered.
func (ctx *Context) Config() (*config.Config, error) {
	conf := config.New(config.Opts{
		EnvLookup: ctx.env.EnvLookup,
		Fs:        ctx.env.Fs,
	})
	dir, err := ctx.Dir()
	if err != nil {
		ctx.logger.Debugf("Skipping config file: %s", err)
		return conf, nil
	}
	if err := conf.LoadPath(filepath.Join(dir, "config.toml")); err != nil {
		return nil, err
	}
	return conf, nil
}
