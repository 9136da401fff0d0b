// Package config loads the open-here configuration.
//
// Settings come from a TOML file, some of them can be overridden by environment
// variables. The server and client settings are exposed as two independent records.
package config
