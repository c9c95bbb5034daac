package placer

// SetRenameForTests overrides the same-volume rename used by Place.
func SetRenameForTests(fn func(src, dst string) error) func() {
	previous := renameFile
	renameFile = fn
	return func() {
		renameFile = previous
	}
}
