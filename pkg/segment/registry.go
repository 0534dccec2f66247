package segment

import (
	"sort"
	"sync"

	"gitlab.com/tinyland/lab/modeline/pkg/event"
)

// Registry manages named segment declarations. It is safe for concurrent
// use, though the engine only touches it from the host's UI goroutine.
type Registry struct {
	mu       sync.RWMutex
	segments map[string]Segment
}

// NewRegistry returns an empty registry ready for segment declarations.
func NewRegistry() *Registry {
	return &Registry{segments: make(map[string]Segment)}
}

// Declare registers a segment, replacing any existing declaration with the
// same name. Last writer wins; no error on redeclaration, which supports
// live redefinition during development.
func (r *Registry) Declare(s Segment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.segments[s.Name] = s
}

// Resolve returns the segment with the given name, or false if not found.
func (r *Registry) Resolve(name string) (Segment, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.segments[name]
	return s, ok
}

// Remove deletes a segment declaration. It is a no-op if the name is not
// found.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.segments, name)
}

// Names returns a sorted slice of all declared segment names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.segments))
	for name := range r.segments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TriggeredBy returns all segments declaring the given event type as a
// trigger. The cache calls this at event delivery time so trigger sets
// always reflect the latest declarations, including redeclared segments.
func (r *Registry) TriggeredBy(t event.Type) []Segment {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Segment
	for _, s := range r.segments {
		if s.TriggeredBy(t) {
			out = append(out, s)
		}
	}
	return out
}
