package pollers

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages a set of named pollers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	pollers  map[string]Poller
	statuses map[string]*Status
}

// NewRegistry returns an empty registry ready for poller registration.
func NewRegistry() *Registry {
	return &Registry{
		pollers:  make(map[string]Poller),
		statuses: make(map[string]*Status),
	}
}

// Register adds a poller to the registry. It returns an error if a poller
// with the same name is already registered.
func (r *Registry) Register(p Poller) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.Name()
	if _, exists := r.pollers[name]; exists {
		return fmt.Errorf("poller %q already registered", name)
	}

	r.pollers[name] = p
	r.statuses[name] = &Status{Name: name, Healthy: true}
	return nil
}

// Unregister removes a poller by name. It is a no-op if the name is not
// found.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pollers, name)
	delete(r.statuses, name)
}

// Get returns the poller with the given name, or false if not found.
func (r *Registry) Get(name string) (Poller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pollers[name]
	return p, ok
}

// List returns a sorted slice of all registered poller names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.pollers))
	for name := range r.pollers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PollerStatus returns a copy of the runtime status for the named poller,
// or false if it is not registered.
func (r *Registry) PollerStatus(name string) (Status, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.statuses[name]
	if !ok {
		return Status{}, false
	}
	return *s, true
}

// AllStatus returns a copy of all poller statuses, sorted by name.
func (r *Registry) AllStatus() []Status {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Status, 0, len(r.statuses))
	for _, s := range r.statuses {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// updateStatus updates the status entry for the named poller. Caller must
// NOT hold the lock; this method acquires it.
func (r *Registry) updateStatus(name string, fn func(s *Status)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.statuses[name]; ok {
		fn(s)
	}
}
