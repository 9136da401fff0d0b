package fsutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// JoinWithin joins name to base, treating an absolute name as relative to base.
// It fails when the cleaned result is base itself or lies outside of it.
func JoinWithin(base, name string) (string, error) {
	rel := strings.TrimPrefix(name, filepath.VolumeName(name))
	rel = strings.TrimLeft(rel, `/\`)

	base = filepath.Clean(base)
	path := filepath.Join(base, rel)
	if !Within(base, path) {
		return "", fmt.Errorf("'%s' resolves outside of '%s'", name, base)
	}
	return path, nil
}

// Within reports whether path lies strictly under base. Both are expected to be clean.
func Within(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == "." {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// IsRegularFile reports whether path names an existing regular file, following symlinks.
func IsRegularFile(fs afero.Fs, path string) bool {
	fi, err := fs.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
