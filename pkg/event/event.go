// Package event defines the named events that drive modeline invalidation
// and the subscription bus that delivers them. The host runtime (or the demo
// simulator) emits events when editor state changes; the segment cache
// subscribes segment triggers to them. This replaces ad-hoc hook attachment
// with an explicit observer list per event type.
package event

import "time"

// Type identifies a class of editor state change.
type Type string

// Events emitted by the host when buffer or window state changes.
const (
	FileOpened       Type = "file-opened"
	FileSaved        Type = "file-saved"
	BufferModified   Type = "buffer-modified"
	BufferRenamed    Type = "buffer-renamed"
	BufferKilled     Type = "buffer-killed"
	ModeChanged      Type = "mode-changed"
	EncodingChanged  Type = "encoding-changed"
	SelectionChanged Type = "selection-changed"
	SearchUpdated    Type = "search-updated"
)

// Events emitted when external processes finish or background pollers
// publish a fresh snapshot.
const (
	VCSRefreshed     Type = "vcs-refreshed"
	CheckerFinished  Type = "checker-finished"
	SystemRefreshed  Type = "system-refreshed"
	KubeRefreshed    Type = "kube-refreshed"
	TailnetRefreshed Type = "tailnet-refreshed"
)

// Window and focus events.
const (
	WindowConfigChanged Type = "window-config-changed"
	SurfaceEntered      Type = "surface-entered"
	SurfaceClosed       Type = "surface-closed"
	AppFocusLost        Type = "app-focus-lost"
	AppFocusGained      Type = "app-focus-gained"
	RedrawTick          Type = "redraw-tick"
)

// Event is a single state-change notification. SurfaceID and BufferID narrow
// the affected scope; either or both may be empty, meaning the event applies
// to every scope (e.g. a poller snapshot that is not tied to one buffer).
// Data carries an event-specific payload that receivers type-assert.
type Event struct {
	Type      Type
	SurfaceID string
	BufferID  string
	Data      interface{}
	Timestamp time.Time
}

// New returns an Event of the given type stamped with the current time.
func New(t Type) Event {
	return Event{Type: t, Timestamp: time.Now()}
}

// ForBuffer returns an Event scoped to a single buffer.
func ForBuffer(t Type, bufferID string) Event {
	ev := New(t)
	ev.BufferID = bufferID
	return ev
}

// ForSurface returns an Event scoped to a single surface.
func ForSurface(t Type, surfaceID string) Event {
	ev := New(t)
	ev.SurfaceID = surfaceID
	return ev
}
