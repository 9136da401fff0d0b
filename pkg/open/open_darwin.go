package open

// SystemKind returns the opener for macOS, using the "open" command.
func SystemKind() Kind {
	return Open
}
