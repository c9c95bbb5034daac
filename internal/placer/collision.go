package placer

import (
	"fmt"
	"path/filepath"
	"strings"

	"mediamanager/internal/fileutil"
	"mediamanager/internal/media"
)

// collisionMarker is inserted before the extension once per taken candidate.
const collisionMarker = "_"

// resolveFilename returns the first free name among base+ext, base+"_"+ext,
// base+"__"+ext, and so on, trying at most maxAttempts candidates. A name is
// taken when a file exists under dir or reserved reports it.
func resolveFilename(dir, base, ext string, maxAttempts int, reserved func(name string) bool) (string, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	for markers := 0; markers < maxAttempts; markers++ {
		name := base + strings.Repeat(collisionMarker, markers) + ext
		taken, err := fileutil.Exists(filepath.Join(dir, name))
		if err != nil {
			return "", media.Wrap(media.ErrIO, "placer", "resolve filename", fmt.Sprintf("inspect %s", name), err)
		}
		if !taken && reserved != nil {
			taken = reserved(name)
		}
		if !taken {
			return name, nil
		}
	}
	return "", media.Wrap(media.ErrCollisionLimit, "placer", "resolve filename",
		fmt.Sprintf("no free name for %s%s in %s after %d attempts", base, ext, dir, maxAttempts), nil)
}
