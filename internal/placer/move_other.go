//go:build !linux

package placer

func renameNoReplace(src, dst string) error {
	return renameChecked(src, dst)
}
