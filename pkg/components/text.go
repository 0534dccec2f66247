// Package components provides ANSI-aware text primitives for status-line
// rendering: visible-width measurement, truncation, and padding. Widths are
// measured in terminal cells via grapheme clustering, so double-width
// characters and emoji in segment content do not break alignment.
package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLen returns the visible character width of s in terminal cells.
// ANSI escape sequences are ignored. Wide characters (CJK, emoji) are
// counted as width 2. Zero-width joiners, combining marks, and other
// zero-width characters are handled correctly via grapheme clustering.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate truncates s to at most maxWidth visible cells, preserving any
// ANSI escape sequences that appear before the cut point. If s is already
// within maxWidth, it is returned unchanged.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "")
}

// TruncateWithTail truncates s to at most maxWidth visible cells, appending
// tail (e.g. "…") if truncation occurs. The tail itself counts toward
// maxWidth.
func TruncateWithTail(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, tail)
}

// PadRight pads s with trailing spaces so that its visible width equals
// width. If s is already wider than width, it is returned unchanged.
func PadRight(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}

// PadLeft pads s with leading spaces so that its visible width equals
// width. If s is already wider than width, it is returned unchanged.
func PadLeft(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return strings.Repeat(" ", width-vis) + s
}

// Spread joins left and right with enough spaces between them that the
// total visible width equals width. The gap is clamped to zero when the
// content alone exceeds width; nothing is truncated here, overflow handling
// belongs to the rendering surface.
func Spread(left, right string, width int) string {
	gap := width - VisibleLen(left) - VisibleLen(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}
