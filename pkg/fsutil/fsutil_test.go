package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestJoinWithin(t *testing.T) {
	base := filepath.Join(os.TempDir(), "open-here")

	testCases := []struct {
		name    string
		expPath string
		valid   bool
	}{
		{"image.png", filepath.Join(base, "image.png"), true},
		{"dir/image.png", filepath.Join(base, "dir", "image.png"), true},
		{"./dir/../image.png", filepath.Join(base, "image.png"), true},
		{"/etc/passwd", filepath.Join(base, "etc", "passwd"), true},
		{"//etc/passwd", filepath.Join(base, "etc", "passwd"), true},
		{"", "", false},
		{"./", "", false},
		{"/", "", false},
		{"dir/..", "", false},
		{"../etc/passwd", "", false},
		{"a/../../etc/passwd", "", false},
		{"..", "", false},
	}

	for _, tc := range testCases {
		path, err := JoinWithin(base, tc.name)
		if tc.valid {
			require.NoError(t, err, tc.name)
			require.Equal(t, tc.expPath, path, tc.name)
		} else {
			require.Error(t, err, tc.name)
		}
	}
}

func TestWithin(t *testing.T) {
	require.True(t, Within("/tmp/open-here", "/tmp/open-here/a"))
	require.True(t, Within("/tmp/open-here", "/tmp/open-here/..a"))
	require.False(t, Within("/tmp/open-here", "/tmp/open-here"))
	require.False(t, Within("/tmp/open-here", "/tmp/open-here-2/a"))
	require.False(t, Within("/tmp/open-here", "/tmp"))
}

func TestIsRegularFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/data", 0755))
	require.NoError(t, afero.WriteFile(fs, "/data/notes.txt", []byte("notes"), 0644))

	require.True(t, IsRegularFile(fs, "/data/notes.txt"))
	require.False(t, IsRegularFile(fs, "/data"))
	require.False(t, IsRegularFile(fs, "/data/missing.txt"))
}
