package media

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const fallbackSlug = "untitled"

// Slug converts input to a lowercase filesystem-safe name. Letters, digits,
// and underscores are kept; every other run becomes a single hyphen.
// Accented letters are folded to their base form before filtering.
func Slug(input string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), input)
	if err != nil {
		folded = input
	}
	folded = strings.ToLower(strings.TrimSpace(folded))

	var slug strings.Builder
	lastHyphen := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			slug.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen && slug.Len() > 0 {
				slug.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(slug.String(), "-_")
}

// BaseName returns the slug used for a placed file: the title when it yields
// a usable slug, otherwise the stem of the original filename.
func BaseName(title, originalPath string) string {
	if slug := Slug(title); slug != "" {
		return slug
	}
	base := filepath.Base(originalPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if slug := Slug(stem); slug != "" {
		return slug
	}
	return fallbackSlug
}

// Extension returns the lower-cased extension of path including its dot, or
// an empty string when there is none.
func Extension(path string) string {
	return strings.ToLower(filepath.Ext(filepath.Base(path)))
}
