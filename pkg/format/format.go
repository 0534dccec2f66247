// Package format assembles segment values into the final status line: left
// segments concatenated in order, right segments likewise, and padding
// computed so the right side lands flush against the surface edge. Widths
// are measured in rendered cells, never rune counts.
package format

import "gitlab.com/tinyland/lab/modeline/pkg/components"

// ValueFunc resolves a segment name to its current display string. The
// engine passes a closure over the segment cache; unknown names must
// resolve to "".
type ValueFunc func(name string) string

// Assemble concatenates the left and right segment values and pads the gap
// so that the total visible width equals width. Segments embed their own
// spacing; no separator is inserted. Padding clamps to zero when the
// content already exceeds width — overflow truncation is the rendering
// surface's concern, not the assembler's. Empty lists produce an empty
// side, not an error.
func Assemble(left, right []string, width int, value ValueFunc) string {
	var l, r string
	for _, name := range left {
		l += value(name)
	}
	for _, name := range right {
		r += value(name)
	}
	return components.Spread(l, r, width)
}
