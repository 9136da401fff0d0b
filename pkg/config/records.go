package config

import (
	"fmt"
	"time"

	humanize "github.com/dustin/go-humanize"
	"github.com/open-here/open-here/pkg/open"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// DefaultHost is the address the server listens on and the client connects to by default.
const DefaultHost = "127.0.0.1:9123"

// DefaultMaxFilesize is the default maximum request body size accepted by the server (25 MiB).
const DefaultMaxFilesize int64 = 25 * 1024 * 1024

// ServerConfig is the configuration of the open-here server.
type ServerConfig struct {
	// Host is the address to listen on, as "ADDR:PORT".
	Host string

	// DryRun makes the server describe commands instead of running them.
	DryRun bool

	// MaxFilesize bounds the request body size, in bytes.
	MaxFilesize int64

	// Opener is the platform opener to use.
	Opener open.Kind
}

// DefaultServerConfig returns the server configuration used when nothing is set.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:        DefaultHost,
		MaxFilesize: DefaultMaxFilesize,
		Opener:      open.SystemKind(),
	}
}

// ClientConfig is the configuration of the open-here client.
type ClientConfig struct {
	// Host is the server address, as "ADDR:PORT".
	Host string

	// Timeout is the HTTP request timeout, 0 means no timeout.
	Timeout time.Duration
}

// DefaultClientConfig returns the client configuration used when nothing is set.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{Host: DefaultHost}
}

// URL returns the base URL of the server.
func (c ClientConfig) URL() string {
	return "http://" + c.Host
}

// Server returns the server configuration, falling back to defaults for unset keys.
func (c *Config) Server() (ServerConfig, error) {
	conf := DefaultServerConfig()

	if val := c.Get(keyServerHost); val != nil {
		conf.Host = cast.ToString(val)
	}
	if val := c.Get(keyServerDryRun); val != nil {
		dryRun, err := cast.ToBoolE(val)
		if err != nil {
			return conf, errors.Wrap(err, keyServerDryRun)
		}
		conf.DryRun = dryRun
	}
	if val := c.Get(keyServerMaxFilesize); val != nil {
		size, err := ParseSize(cast.ToString(val))
		if err != nil {
			return conf, errors.Wrap(err, keyServerMaxFilesize)
		}
		conf.MaxFilesize = size
	}
	if val := c.Get(keyServerOpener); val != nil {
		opener, err := open.ParseKind(cast.ToString(val))
		if err != nil {
			return conf, errors.Wrap(err, keyServerOpener)
		}
		conf.Opener = opener
	}
	return conf, nil
}

// Client returns the client configuration, falling back to defaults for unset keys.
func (c *Config) Client() (ClientConfig, error) {
	conf := DefaultClientConfig()

	if val := c.Get(keyClientHost); val != nil {
		conf.Host = cast.ToString(val)
	}
	if val := c.Get(keyClientTimeout); val != nil {
		seconds, err := cast.ToInt64E(val)
		if err != nil {
			return conf, errors.Wrap(err, keyClientTimeout)
		}
		conf.Timeout = time.Duration(seconds) * time.Second
	}
	return conf, nil
}

// ParseSize parses a size in bytes, either as a plain number or with a unit ("25MiB", "1 GB").
func ParseSize(s string) (int64, error) {
	size, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, err
	}
	if size == 0 || size > 1<<62 {
		return 0, fmt.Errorf("invalid size '%s'", s)
	}
	return int64(size), nil
}
