package editor

import "time"

// BufferInfo is the per-buffer metadata segments display.
type BufferInfo struct {
	ID       BufferID
	Name     string // display name, e.g. "main.go"
	Path     string // absolute file path, empty for non-file buffers
	Modified bool
	ReadOnly bool
	Remote   bool   // file accessed over a remote connection
	Narrowed bool   // buffer restricted to a sub-region
	Mode     string // major mode / language name, e.g. "Go"
	Encoding string // coding system, e.g. "utf-8"
	EOL      string // end-of-line convention: "LF", "CRLF", "CR"
	Size     int64  // buffer size in bytes
}

// Position is the cursor location within a buffer, per scope (two surfaces
// showing the same buffer can have different points).
type Position struct {
	Line    int
	Column  int
	Percent int // 0-100 position of window start within the buffer
}

// Selection describes an active text selection in a scope.
type Selection struct {
	Active    bool
	Lines     int
	Chars     int
	Rectangle bool // block/rectangle selection
}

// VCSState classifies a file's relation to its version-control repository.
type VCSState string

const (
	VCSClean    VCSState = "clean"
	VCSEdited   VCSState = "edited"
	VCSAdded    VCSState = "added"
	VCSRemoved  VCSState = "removed"
	VCSConflict VCSState = "conflict"
	VCSIgnored  VCSState = "ignored"
)

// VCSInfo is the version-control status for a buffer's file.
type VCSInfo struct {
	Backend string // e.g. "Git"
	Branch  string
	State   VCSState
}

// CheckerInfo is the syntax-checker result summary for a buffer.
type CheckerInfo struct {
	Running  bool
	Errors   int
	Warnings int
	Notes    int
}

// SearchInfo describes an in-progress interactive search in a scope.
type SearchInfo struct {
	Active  bool
	Query   string
	Current int // 1-based index of the current match
	Total   int
}

// StateReader is the pull-based query surface a segment render function may
// use. Every method is a cheap, non-blocking read of already-computed state;
// anything expensive (VCS queries, checker runs, system metrics) is gathered
// off the redraw path by pollers and only snapshotted here.
type StateReader interface {
	// Buffer returns metadata for a buffer, or false if the buffer no
	// longer exists.
	Buffer(id BufferID) (BufferInfo, bool)

	// Position returns the cursor position for a scope.
	Position(sc Scope) Position

	// Selection returns the active selection for a scope, if any.
	Selection(sc Scope) Selection

	// VCS returns version-control status for a buffer's file, or false if
	// the file is not under version control (or not yet queried).
	VCS(id BufferID) (VCSInfo, bool)

	// Checker returns the syntax-checker summary for a buffer, or false if
	// no checker is attached.
	Checker(id BufferID) (CheckerInfo, bool)

	// Search returns interactive-search state for a scope.
	Search(sc Scope) SearchInfo

	// Snapshot returns the most recent data published by the named
	// background poller (e.g. "system", "kube", "tailnet"), or false if
	// that poller has not published yet. Receivers type-assert the value.
	Snapshot(poller string) (interface{}, bool)

	// Now returns the current wall-clock time. Injected so time-derived
	// segments are testable against simulated clocks.
	Now() time.Time
}
