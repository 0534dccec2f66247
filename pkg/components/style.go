package components

import (
	"fmt"
	"strconv"
	"strings"
)

// Color produces an ANSI true-color (24-bit) foreground escape sequence from
// a hex color string like "#ff5500" or "ff5500". Returns an empty string if
// the input is empty or malformed.
func Color(hex string) string {
	r, g, b, ok := parseHex(hex)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// Reset returns the ANSI reset sequence that clears all styling.
func Reset() string {
	return "\x1b[0m"
}

// Colorize wraps s in the foreground color for hex, followed by a reset.
// If hex is empty or malformed, s is returned unchanged. Segment render
// functions use this for state-dependent coloring (checker severity,
// version-control state) so the color travels with the cached string.
func Colorize(s, hex string) string {
	c := Color(hex)
	if c == "" {
		return s
	}
	return c + s + Reset()
}

// Bold wraps s in ANSI bold escape sequences.
func Bold(s string) string {
	return "\x1b[1m" + s + "\x1b[22m"
}

// Dim wraps s in ANSI dim/faint escape sequences.
func Dim(s string) string {
	return "\x1b[2m" + s + "\x1b[22m"
}

// parseHex parses a hex color string into r, g, b components. Accepts
// "#RRGGBB" or "RRGGBB".
func parseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	rv, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	gv, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	bv, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}
