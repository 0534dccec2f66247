// Package focus tracks which display surface is considered active. Multiple
// surfaces are visible at once in split layouts but at most one carries the
// active styling; every segment asks this one authority instead of guessing
// from "currently being drawn".
package focus

import (
	"sync"

	"gitlab.com/tinyland/lab/modeline/pkg/editor"
)

// Tracker is the process-wide focus state machine. Two states: focused on
// one surface, or unfocused (the whole application lost OS input focus).
type Tracker struct {
	mu      sync.RWMutex
	current editor.SurfaceID
	focused bool

	// lastSelected remembers the surface that held focus before the
	// application went unfocused, so regaining focus without an explicit
	// OS-selected surface restores it.
	lastSelected editor.SurfaceID
}

// NewTracker returns a tracker in the unfocused state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Enter records that the user entered a surface, via window switch or any
// window-configuration change. Transient surfaces actively prompting do not
// count as focus changes and are ignored. Returns the previously focused
// surface and whether focus actually moved.
func (t *Tracker) Enter(s editor.Surface) (prev editor.SurfaceID, changed bool) {
	if s.Kind == editor.KindTransient && s.Prompting {
		t.mu.RLock()
		defer t.mu.RUnlock()
		return t.current, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	prev = t.current
	if t.focused && t.current == s.ID {
		return prev, false
	}
	t.current = s.ID
	t.lastSelected = s.ID
	t.focused = true
	return prev, true
}

// AppFocusLost records that the whole application lost OS-level input
// focus: all surfaces render as inactive. Returns whether the state changed.
func (t *Tracker) AppFocusLost() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.focused {
		return false
	}
	t.focused = false
	t.current = ""
	return true
}

// AppFocusGained records that the application regained OS-level focus on
// the given surface. An empty ID restores the surface selected before the
// focus loss. Returns whether the state changed.
func (t *Tracker) AppFocusGained(selected editor.SurfaceID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if selected == "" {
		selected = t.lastSelected
	}
	if t.focused && t.current == selected {
		return false
	}
	t.current = selected
	t.lastSelected = selected
	t.focused = selected != ""
	return true
}

// SurfaceClosed clears focus if the closed surface held it, and forgets the
// surface as the restore target for AppFocusGained even while the
// application is unfocused. Returns whether the focus state changed.
func (t *Tracker) SurfaceClosed(id editor.SurfaceID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.lastSelected == id {
		t.lastSelected = ""
	}
	if !t.focused || t.current != id {
		return false
	}
	t.focused = false
	t.current = ""
	return true
}

// Current returns the focused surface, or false when no surface is focused.
func (t *Tracker) Current() (editor.SurfaceID, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current, t.focused
}

// IsActive reports whether the given surface is the focused one.
func (t *Tracker) IsActive(id editor.SurfaceID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.focused && t.current == id
}
