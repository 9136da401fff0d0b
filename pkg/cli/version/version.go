// Package version holds the open-here version, set at build time with
// -ldflags "-X github.com/open-here/open-here/pkg/cli/version.version=X.Y.Z".
package version

var version = "SNAPSHOT"

// Version returns the open-here version.
func Version() string {
	return version
}
