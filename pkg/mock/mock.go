package mock

import (
	"bytes"
	"errors"
	"io"

	"github.com/open-here/open-here/pkg/cli"
	"github.com/open-here/open-here/pkg/config"
	"github.com/spf13/afero"
)

// NewEnvironment returns an environment which acts as a "black hole".
func NewEnvironment() *cli.Environment {
	return &cli.Environment{
		Out:    io.Discard,
		ErrOut: io.Discard,
		Fs:     afero.NewMemMapFs(),
		EnvLookup: func(key string) (string, bool) {
			return "", false
		},
		HomeDir: func() (string, error) {
			return "", errors.New("no home")
		},
	}
}

// NewEnvironmentWithOutput returns a black hole environment whose output is captured.
func NewEnvironmentWithOutput() (*cli.Environment, *bytes.Buffer) {
	var out bytes.Buffer
	env := NewEnvironment()
	env.Out = &out
	return env, &out
}

// Context is an api.Context which can be mocked.
type Context struct {
	*cli.Context
	config *config.Config
}

// NewContext returns a new mock context.
func NewContext(environment *cli.Environment) *Context {
	if environment == nil {
		environment = NewEnvironment()
	}
	return &Context{
		Context: cli.NewContext(environment),
	}
}

// SetConfig sets the configuration returned by the context.
func (ctx *Context) SetConfig(conf *config.Config) {
	ctx.config = conf
}

// Config returns the configuration, or the one loaded from the environment when none is set.
func (ctx *Context) Config() (*config.Config, error) {
	if ctx.config != nil {
		return ctx.config, nil
	}
	return ctx.Context.Config()
}
