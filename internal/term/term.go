// Package term provides color state and terminal detection.
//
// The active color profile is package-level because several packages
// (logging, display) format output with it. [Configure] sets it once during
// startup; when colors are disabled [Paint] returns its input unchanged.
package term

import (
	"github.com/muesli/termenv"

	"github.com/backmassage/assetsort/internal/config"
)

// Color is an ANSI 256 palette index understood by termenv.
type Color string

// Palette used by the logger and banner.
const (
	Red     Color = "9"
	Green   Color = "10"
	Yellow  Color = "11"
	Blue    Color = "12"
	Magenta Color = "13"
	Cyan    Color = "14"
)

var profile = termenv.Ascii

// Configure resolves the color mode into a termenv profile. Call once during
// startup (from [logging.NewLogger]).
func Configure(mode config.ColorMode) {
	profile = resolve(mode, termenv.EnvColorProfile())
}

// Enabled reports whether colors are currently active.
func Enabled() bool { return profile != termenv.Ascii }

// Paint renders s bold in color c, or returns s when colors are off.
func Paint(c Color, s string) string {
	if profile == termenv.Ascii {
		return s
	}
	return profile.String(s).Foreground(profile.Color(string(c))).Bold().String()
}

// resolve picks the profile for mode. detected is what termenv reports for
// stdout; it is already Ascii for non-TTY output, TERM=dumb and NO_COLOR
// (https://no-color.org).
func resolve(mode config.ColorMode, detected termenv.Profile) termenv.Profile {
	switch mode {
	case config.ColorAlways:
		if detected == termenv.Ascii {
			return termenv.ANSI256
		}
		return detected
	case config.ColorNever:
		return termenv.Ascii
	default: // ColorAuto
		return detected
	}
}
