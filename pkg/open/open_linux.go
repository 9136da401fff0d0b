package open

// SystemKind returns the opener for Linux, it relies on "xdg-open".
func SystemKind() Kind {
	return XdgOpen
}
