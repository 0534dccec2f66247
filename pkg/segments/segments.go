// Package segments declares the built-in modeline segments: buffer
// identity and state, cursor position, selection and search info, major
// mode, encoding, version control, syntax checker, clock, and the
// poller-fed infrastructure segments. Each segment is declared
// independently with its own invalidation triggers; none of them knows the
// others exist.
//
// Every segment embeds a single leading space as its separator. The
// assembler adds nothing between segments, so an empty segment disappears
// without leaving a double gap.
package segments

import (
	"gitlab.com/tinyland/lab/modeline/pkg/segment"
)

// RegisterAll declares every built-in segment into the registry.
// Redeclaration is harmless: last writer wins, so hosts may call this and
// then override individual segments.
func RegisterAll(r *segment.Registry) {
	for _, s := range []segment.Segment{
		BufferID(),
		BufferState(),
		Mode(),
		Position(),
		Selection(),
		Search(),
		Encoding(),
		VC(),
		Checker(),
		Clock(),
		System(),
		Kube(),
		Tailnet(),
	} {
		r.Declare(s)
	}
}
