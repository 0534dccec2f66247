// Package preset defines named modeline layouts: an ordered list of segment
// names for the left side and one for the right. Presets are read-only
// after definition; assigning one to a surface hands out copies of the
// lists, so temporary per-surface edits never corrupt the shared
// definition. Users may define custom presets via TOML or YAML files.
package preset

import (
	"sort"
	"sync"
)

// Preset is a named pair of ordered segment-name lists.
type Preset struct {
	Name        string   `toml:"name" yaml:"name"`
	Description string   `toml:"description,omitempty" yaml:"description,omitempty"`
	Left        []string `toml:"left" yaml:"left"`
	Right       []string `toml:"right" yaml:"right"`
}

// CopyLeft returns an independent copy of the left segment list.
func (p Preset) CopyLeft() []string {
	out := make([]string, len(p.Left))
	copy(out, p.Left)
	return out
}

// CopyRight returns an independent copy of the right segment list.
func (p Preset) CopyRight() []string {
	out := make([]string, len(p.Right))
	copy(out, p.Right)
	return out
}

// Registry manages named presets. The engine owns one; no package-level
// preset state exists.
type Registry struct {
	mu      sync.RWMutex
	presets map[string]Preset
}

// NewRegistry returns a registry pre-populated with the built-in presets.
func NewRegistry() *Registry {
	r := &Registry{presets: make(map[string]Preset)}
	for _, p := range prBuiltins() {
		r.presets[p.Name] = p
	}
	return r
}

// Define registers a preset, replacing any existing one with the same name.
func (r *Registry) Define(p Preset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[p.Name] = p
}

// Get returns a named preset, falling back to "main" if not found. Entries
// in the returned preset's lists are resolved against the segment registry
// at render time, never here.
func (r *Registry) Get(name string) Preset {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.presets[name]; ok {
		return p
	}
	return r.presets["main"]
}

// Lookup returns a named preset without the fallback.
func (r *Registry) Lookup(name string) (Preset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.presets[name]
	return p, ok
}

// Names returns all registered preset names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
