package config

import (
	"io"
	"os"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// TOML keys for the open-here configuration.
const (
	keyServerHost        = "server.host"
	keyServerDryRun      = "server.dry_run"
	keyServerMaxFilesize = "server.max_filesize"
	keyServerOpener      = "server.opener"
	keyClientHost        = "client.host"
	keyClientTimeout     = "client.timeout"
)

// Environment variables for the open-here configuration.
const (
	// EnvHost is the host and port the client sends open requests to.
	EnvHost = "OPEN_HOST"
)

// Opts are functional options for a Config.
type Opts struct {
	// EnvWhitelist is a map of config keys and environment variables.
	// When present, these env vars take precedence over the values in the toml.Tree.
	EnvWhitelist map[string]string

	// EnvLookup is the function used to lookup environment variables.
	// When not set it defaults to os.LookupEnv.
	EnvLookup func(key string) (string, bool)

	// Fs is an abstraction for the filesystem.
	Fs afero.Fs
}

// Config aggregates multiple sources (env vars, TOML document) for configuration values.
type Config struct {
	path         string
	tree         *toml.Tree
	envWhitelist map[string]string
	envLookup    func(key string) (string, bool)
	fs           afero.Fs
}

// New creates a Config based on functional options.
func New(opts Opts) *Config {
	if opts.EnvWhitelist == nil {
		opts.EnvWhitelist = map[string]string{
			keyClientHost: EnvHost,
		}
	}

	if opts.EnvLookup == nil {
		opts.EnvLookup = os.LookupEnv
	}

	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	tree, _ := toml.TreeFromMap(make(map[string]interface{}))

	return &Config{
		tree:         tree,
		envWhitelist: opts.EnvWhitelist,
		envLookup:    opts.EnvLookup,
		fs:           opts.Fs,
	}
}

// Empty returns a config without any TOML value.
func Empty() *Config {
	return New(Opts{})
}

// LoadPath populates the config based on a path to a TOML file.
// A missing file is not an error, the config is then left empty.
func (c *Config) LoadPath(path string) error {
	f, err := c.fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.path = path
			return nil
		}
		return err
	}
	defer f.Close()

	if err := c.LoadReader(f); err != nil {
		return errors.Wrapf(err, "couldn't parse '%s'", path)
	}
	c.path = path
	return nil
}

// LoadReader populates the config based on an io.Reader containing TOML data.
func (c *Config) LoadReader(reader io.Reader) error {
	tree, err := toml.LoadReader(reader)
	if err != nil {
		return err
	}
	c.tree = tree
	return nil
}

// Path returns the path to the config file.
func (c *Config) Path() string {
	return c.path
}

// Get returns a value from the Config using a key.
func (c *Config) Get(key string) interface{} {
	// Check if the given key is whitelisted as an env var.
	if envVar, ok := c.envWhitelist[key]; ok {
		// If so, look-it up.
		if envVal, ok := c.envLookup(envVar); ok {
			return envVal
		}
	}

	// Fallback to the TOML tree if present.
	switch node := c.tree.Get(key).(type) {
	case *toml.Tree, []*toml.Tree:
		return nil
	default:
		return node
	}
}

// Keys returns all the keys which have a value, sorted.
func (c *Config) Keys() []string {
	set := make(map[string]bool)
	for key, envVar := range c.envWhitelist {
		if _, ok := c.envLookup(envVar); ok {
			set[key] = true
		}
	}
	searchKeys(c.tree, set, nil)

	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// searchKeys walks recursively through a toml.Tree and adds the full path to each leaf into keys.
func searchKeys(tree *toml.Tree, keys map[string]bool, keyPath []string) {
	for _, key := range tree.Keys() {
		childKeyPath := append(append([]string{}, keyPath...), key)
		switch node := tree.Get(key).(type) {
		case *toml.Tree:
			searchKeys(node, keys, childKeyPath)
		default:
			keys[strings.Join(childKeyPath, ".")] = true
		}
	}
}
