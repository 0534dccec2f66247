// Package segment defines the modeline segment descriptor and the registry
// that maps segment names to descriptors. Segments are independently
// declarable by feature packages (version control, checker, search, infra
// pollers) without coordinating a single monolithic render function; the
// registry is the decoupling point between preset layouts and render code.
package segment

import (
	"gitlab.com/tinyland/lab/modeline/pkg/editor"
	"gitlab.com/tinyland/lab/modeline/pkg/event"
	"gitlab.com/tinyland/lab/modeline/pkg/theme"
)

// Context carries everything a render function may read. Render functions
// are pure with respect to it: same context and host state, same output.
type Context struct {
	// Scope is the surface/buffer pair being rendered.
	Scope editor.Scope

	// Width is the surface width in cells, queried at render time.
	Width int

	// Active reports whether the scope's surface is the focused one.
	Active bool

	// Theme is the palette in effect.
	Theme theme.Theme

	// State is the host's read-only state query interface. Calls must be
	// cheap and non-blocking; expensive data comes from poller snapshots.
	State editor.StateReader
}

// RenderFunc computes a segment's display string. Returning an empty string
// means the segment currently has no content (e.g. no active selection).
// Errors are contained by the cache: the previous value is kept and the
// error never reaches the assembler.
type RenderFunc func(Context) (string, error)

// Segment is an immutable segment declaration. Declaring the same name
// again replaces the whole descriptor.
type Segment struct {
	// Name uniquely identifies the segment in presets.
	Name string

	// Render computes the display string. Segments embed their own
	// surrounding spacing; the assembler adds no separators.
	Render RenderFunc

	// Triggers lists the events whose occurrence invalidates this
	// segment's cached value. An empty list makes the segment volatile:
	// recomputed once per redraw generation on the focused surface and
	// only on first demand elsewhere.
	Triggers []event.Type

	// Init is the value shown before the first successful render, and the
	// fallback when the very first render fails.
	Init string

	// Styled marks segments whose value should be wrapped in the
	// active/inactive line face by the assembler.
	Styled bool
}

// Volatile reports whether the segment has no declared triggers.
func (s Segment) Volatile() bool {
	return len(s.Triggers) == 0
}

// TriggeredBy reports whether t is one of the segment's declared triggers.
func (s Segment) TriggeredBy(t event.Type) bool {
	for _, tr := range s.Triggers {
		if tr == t {
			return true
		}
	}
	return false
}
