// Package target describes what an open request asks the workstation to open.
package target

import (
	"fmt"
	"strings"

	"github.com/open-here/open-here/pkg/fsutil"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// OpenTarget is either a URL or a Path.
type OpenTarget interface {
	fmt.Stringer
	isOpenTarget()
}

// URL is an absolute URL handed verbatim to the opener.
type URL struct {
	Target string
}

// Path is a named payload which gets written on the server before being opened.
type Path struct {
	// Filename is the caller's preferred name for the file.
	Filename string

	// Content is the raw file content.
	Content []byte
}

func (URL) isOpenTarget()  {}
func (Path) isOpenTarget() {}

// String returns the URL.
func (u URL) String() string {
	return u.Target
}

// String returns the filename along with the content length.
func (p Path) String() string {
	return fmt.Sprintf("%s, len: %d", p.Filename, len(p.Content))
}

// UnknownTargetError is returned by Parse when a string is neither a URL nor an existing file.
type UnknownTargetError struct {
	Target string
}

// Error converts an UnknownTargetError to a string.
func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown target '%s', expected an http(s) URL or an existing file", e.Target)
}

// IsURL reports whether s starts with an http or https scheme.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// ValidURL reports whether s can be carried by a URL target.
func ValidURL(s string) bool {
	return s != "" && !strings.ContainsRune(s, 0)
}

// Parse returns the OpenTarget described by s.
// The scheme check happens first so that URLs never trigger a filesystem lookup.
func Parse(fs afero.Fs, s string) (OpenTarget, error) {
	if IsURL(s) {
		if !ValidURL(s) {
			return nil, &UnknownTargetError{Target: s}
		}
		return URL{Target: s}, nil
	}
	if !fsutil.IsRegularFile(fs, s) {
		return nil, &UnknownTargetError{Target: s}
	}
	content, err := afero.ReadFile(fs, s)
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't read '%s'", s)
	}
	return Path{Filename: s, Content: content}, nil
}
