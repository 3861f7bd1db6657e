// Package display formats sizes and counts for the console and prints the
// startup banner.
package display

import (
	"fmt"
	"strings"
)

// FormatBytes returns a human-readable size (B, KiB, MiB, GiB, TiB, PiB).
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	suffixes := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	if exp >= len(suffixes) {
		exp = len(suffixes) - 1
		div = 1
		for i := 0; i <= exp; i++ {
			div *= unit
		}
	}
	return fmt.Sprintf("%.1f %s", float64(bytes)/float64(div), suffixes[exp])
}

// FormatCount returns n followed by noun, pluralised unless n is 1
// (e.g. "1 texture", "3 textures", "2 meshes").
func FormatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	for _, suffix := range []string{"s", "sh", "ch", "x"} {
		if strings.HasSuffix(noun, suffix) {
			return fmt.Sprintf("%d %ses", n, noun)
		}
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
