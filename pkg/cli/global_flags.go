package cli

import (
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// logLevels are the log levels reachable through the verbosity, from the least verbose.
var logLevels = []logrus.Level{
	logrus.ErrorLevel,
	logrus.WarnLevel,
	logrus.InfoLevel,
	logrus.DebugLevel,
	logrus.TraceLevel,
}

// GlobalFlags represents the open-here CLI global flags.
type GlobalFlags struct {
	Verbosity int
}

// Register adds the global flags to a flag set, it accepts the following:
//   - `-v`, `-vv`, `-v -v`...: raises the verbosity by one step per occurrence.
func (gf *GlobalFlags) Register(flags *pflag.FlagSet) {
	flags.CountVarP(&gf.Verbosity, "verbose", "v", "Output verbosity, repeat for more")
}

// ResolveVerbosity falls back to the OPEN_HERE_VERBOSITY env var when no -v flag was given.
func (gf *GlobalFlags) ResolveVerbosity(envLookup func(key string) (string, bool)) int {
	if gf.Verbosity > 0 {
		return gf.Verbosity
	}
	if envVerbosity, ok := envLookup(EnvVerbosity); ok {
		if verbosity, err := strconv.Atoi(envVerbosity); err == nil {
			return verbosity
		}
	}
	return 0
}

// LogLevel returns the log level for a verbosity, clamped to the error and trace levels.
func LogLevel(verbosity int) logrus.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(logLevels) {
		verbosity = len(logLevels) - 1
	}
	return logLevels[verbosity]
}
