// Package editor abstracts the host editor runtime the modeline renders
// for: display surfaces (windows/panes), buffers, and the read-only state
// queries segment render functions are allowed to make. The engine never
// owns buffer or window state; it only reads it through these types. The
// Sim type provides a complete in-memory host for tests and the demo.
package editor

// SurfaceID identifies a display surface (a window or pane with its own
// status line).
type SurfaceID string

// BufferID identifies a buffer shown in a surface.
type BufferID string

// Scope keys a cached segment value: one surface showing one buffer. The
// same buffer shown in two surfaces has two independent scopes.
type Scope struct {
	Surface SurfaceID
	Buffer  BufferID
}

// SurfaceKind distinguishes real editing surfaces from transient input
// surfaces (minibuffer, completion popups) that must not steal focus.
type SurfaceKind int

const (
	// KindNormal is an ordinary editing surface.
	KindNormal SurfaceKind = iota

	// KindTransient is a prompt/popup surface. While it is actively
	// prompting, entering it does not count as a user focus change.
	KindTransient
)

// Surface describes one display surface at render time. Geometry is queried
// fresh on every render; the engine never caches it.
type Surface struct {
	ID     SurfaceID
	Buffer BufferID
	Width  int
	Height int
	Kind   SurfaceKind

	// Prompting is true while a transient surface is actively reading
	// input. Only meaningful when Kind is KindTransient.
	Prompting bool
}

// Scope returns the cache scope for this surface and its current buffer.
func (s Surface) Scope() Scope {
	return Scope{Surface: s.ID, Buffer: s.Buffer}
}
