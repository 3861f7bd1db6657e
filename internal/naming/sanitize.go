package naming

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// invalidChars are rejected in folder names on at least one supported
// platform.
const invalidChars = `<>:"/\|?*`

// SafeName turns an asset name into a folder name: NFC-normalised, with
// invalid and control characters replaced by '_' and trailing dots or spaces
// removed. An empty result becomes "_".
func SafeName(s string) string {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(invalidChars, r) {
			return '_'
		}
		return r
	}, s)
	s = strings.TrimRight(s, ". ")
	if s == "" {
		return "_"
	}
	return s
}

// Stem returns the file name of p without directory or extension.
func Stem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
