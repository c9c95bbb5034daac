package media

import (
	"fmt"
	"strings"
)

// Kind distinguishes the media variants stored in the collection.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// kindPlurals maps each kind to its top-level directory and catalog container.
var kindPlurals = map[Kind]string{
	KindPhoto: "photos",
	KindVideo: "videos",
}

// Kinds returns every known kind in a stable order.
func Kinds() []Kind {
	return []Kind{KindPhoto, KindVideo}
}

// Valid reports whether k is a registered kind.
func (k Kind) Valid() bool {
	_, ok := kindPlurals[k]
	return ok
}

// Plural returns the directory and catalog container name for k, or an empty
// string for unregistered kinds.
func (k Kind) Plural() string {
	return kindPlurals[k]
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves a singular or plural kind name case-insensitively.
func ParseKind(value string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(value))
	for kind, plural := range kindPlurals {
		if name == string(kind) || name == plural {
			return kind, nil
		}
	}
	return "", Wrap(ErrUnknownCategory, "media", "parse kind", fmt.Sprintf("%q is not one of photo, video", value), nil)
}

// KindForContainer resolves a catalog container name such as "photos".
func KindForContainer(container string) (Kind, bool) {
	for kind, plural := range kindPlurals {
		if plural == container {
			return kind, true
		}
	}
	return "", false
}
