//go:build !linux && !darwin && !windows

package open

// SystemKind returns "xdg-open" on the remaining Unix-like systems.
func SystemKind() Kind {
	return XdgOpen
}
