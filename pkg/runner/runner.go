// Package runner turns open targets into opener commands and runs them.
package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/open-here/open-here/pkg/fsutil"
	"github.com/open-here/open-here/pkg/open"
	"github.com/open-here/open-here/pkg/protocol"
	"github.com/open-here/open-here/pkg/target"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DirName is the directory, under the system temporary directory, where payloads are written.
const DirName = "open-here"

// Opts are functional options for a Runner.
type Opts struct {
	// Opener is the platform opener. Defaults to open.SystemKind().
	Opener *open.Kind

	// Fs is the filesystem payloads are written to. Defaults to the OS filesystem.
	Fs afero.Fs

	// TempDir is the parent of the payload directory. Defaults to os.TempDir().
	TempDir string

	// Spawn starts a command without waiting for it. Defaults to a detached process spawn.
	Spawn func(cmd open.Command) error

	// Logger is the logger to use. Defaults to the logrus standard logger.
	Logger *logrus.Logger
}

// Runner materialises payloads and spawns the platform opener.
//
// Payloads sharing a filename overwrite each other, the last write wins.
type Runner struct {
	opener  open.Kind
	fs      afero.Fs
	dir     string
	spawn   func(cmd open.Command) error
	logger  *logrus.Logger
	checkFS bool
}

// New creates a Runner based on functional options.
func New(opts Opts) *Runner {
	r := &Runner{
		opener: open.SystemKind(),
		fs:     opts.Fs,
		spawn:  opts.Spawn,
		logger: opts.Logger,
	}
	if opts.Opener != nil {
		r.opener = *opts.Opener
	}
	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}
	if _, ok := r.fs.(*afero.OsFs); ok {
		r.checkFS = true
	}
	if opts.TempDir == "" {
		opts.TempDir = os.TempDir()
	}
	r.dir = filepath.Join(opts.TempDir, DirName)
	if r.logger == nil {
		r.logger = logrus.StandardLogger()
	}
	if r.spawn == nil {
		r.spawn = func(cmd open.Command) error {
			return spawnDetached(cmd, r.logger)
		}
	}
	return r
}

// Opener returns the platform opener used by the runner.
func (r *Runner) Opener() open.Kind {
	return r.opener
}

// Dir returns the directory payloads are written to.
func (r *Runner) Dir() string {
	return r.dir
}

// Run opens a target. Path payloads are fully written before the opener is spawned.
// The opener exit status is not inspected, on success the returned string is empty.
func (r *Runner) Run(t target.OpenTarget) (string, *protocol.RunError) {
	cmd, runErr := r.Cmd(t)
	if runErr != nil {
		return "", runErr
	}
	r.logger.Debugf("Running: %s", cmd)
	if err := r.spawn(cmd); err != nil {
		return "", protocol.NewRunError(protocol.CouldNotRun, err)
	}
	return "", nil
}

// DryRun describes what Run would do, without writing files nor spawning anything.
func (r *Runner) DryRun(t target.OpenTarget) (string, *protocol.RunError) {
	var res string
	switch t := t.(type) {
	case target.Path:
		path, runErr := r.payloadPath(t.Filename)
		if runErr != nil {
			return "", runErr
		}
		res = fmt.Sprintf("Would save %d bytes to %s. Would run: %s", len(t.Content), path, r.opener.Cmd(path))
	default:
		res = fmt.Sprintf("Would run: %s", r.opener.Cmd(t.String()))
	}
	r.logger.Info(res)
	return res, nil
}

// Cmd returns the command opening a target. For a Path, the payload is written to disk first.
func (r *Runner) Cmd(t target.OpenTarget) (open.Command, *protocol.RunError) {
	switch t := t.(type) {
	case target.Path:
		path, runErr := r.materialise(t)
		if runErr != nil {
			return open.Command{}, runErr
		}
		return r.opener.Cmd(path), nil
	default:
		return r.opener.Cmd(t.String()), nil
	}
}

// payloadPath returns where a payload named filename is written.
func (r *Runner) payloadPath(filename string) (string, *protocol.RunError) {
	path, err := fsutil.JoinWithin(r.dir, filename)
	if err != nil {
		return "", protocol.NewRunError(protocol.UnsafePath, err)
	}
	return path, nil
}

// materialise writes a Path payload and returns the written file path.
func (r *Runner) materialise(p target.Path) (string, *protocol.RunError) {
	path, runErr := r.payloadPath(p.Filename)
	if runErr != nil {
		return "", runErr
	}

	if runErr := r.checkNoSymlinks(path); runErr != nil {
		return "", runErr
	}
	if err := r.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", protocol.NewRunError(protocol.CreateDirectory, err)
	}
	if runErr := r.checkResolved(path); runErr != nil {
		return "", runErr
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if r.checkFS {
		flags |= oNoFollow
	}
	f, err := r.fs.OpenFile(path, flags, 0644)
	if err != nil {
		return "", protocol.NewRunError(protocol.OpenFile, err)
	}
	_, err = f.Write(p.Content)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", protocol.NewRunError(protocol.WriteFile, err)
	}

	r.logger.Debugf("Saved %d bytes to %s", len(p.Content), path)
	return path, nil
}

// checkNoSymlinks makes sure that neither the payload directory nor any existing
// component of path below it is a symlink. It only applies to the OS filesystem.
func (r *Runner) checkNoSymlinks(path string) *protocol.RunError {
	if !r.checkFS {
		return nil
	}
	rel, err := filepath.Rel(r.dir, path)
	if err != nil {
		return protocol.NewRunError(protocol.UnsafePath, err)
	}

	current := r.dir
	components := append([]string{""}, strings.Split(rel, string(filepath.Separator))...)
	for _, component := range components {
		current = filepath.Join(current, component)
		info, err := os.Lstat(current)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return protocol.NewRunError(protocol.CreateDirectory, err)
		}
		if info.Mode()&os.ModeSymlink != 0 {
			return protocol.NewRunError(protocol.UnsafePath, fmt.Errorf("'%s' is a symlink", current))
		}
	}
	return nil
}

// checkResolved makes sure the parent directory of path still lies within the payload
// directory once symlinks are resolved. It only applies to the OS filesystem.
func (r *Runner) checkResolved(path string) *protocol.RunError {
	if !r.checkFS {
		return nil
	}
	dir, err := filepath.EvalSymlinks(r.dir)
	if err != nil {
		return protocol.NewRunError(protocol.CreateDirectory, err)
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(path))
	if err != nil {
		return protocol.NewRunError(protocol.CreateDirectory, err)
	}
	if parent != dir && !fsutil.Within(dir, parent) {
		return protocol.NewRunError(protocol.UnsafePath, fmt.Errorf("'%s' resolves outside of '%s'", path, r.dir))
	}
	return nil
}
