package naming

import (
	"fmt"
	"path"
	"strings"
)

// UniquePath returns requested if taken reports it free. Otherwise it
// appends " - dupN" to the stem (before the extension), counting from 1,
// and returns the first free candidate. Paths are slash-separated.
func UniquePath(requested string, taken func(string) bool) string {
	if !taken(requested) {
		return requested
	}

	dir := path.Dir(requested)
	base := path.Base(requested)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for counter := 1; ; counter++ {
		candidate := path.Join(dir, fmt.Sprintf("%s%s%d%s", stem, dupMarker, counter, ext))
		if !taken(candidate) {
			return candidate
		}
	}
}

const dupMarker = " - dup"

// TrimDup strips a trailing " - dupN" added by UniquePath from stem, so a
// renamed asset keeps deriving the same folder name.
func TrimDup(stem string) string {
	i := strings.LastIndex(stem, dupMarker)
	if i <= 0 {
		return stem
	}
	n := stem[i+len(dupMarker):]
	if n == "" {
		return stem
	}
	for _, r := range n {
		if r < '0' || r > '9' {
			return stem
		}
	}
	return stem[:i]
}
