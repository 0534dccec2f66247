// Package segcache stores the last rendered value of each (segment, scope)
// pair and decides when recomputation happens. Invalidation is lazy: a
// trigger event only marks entries dirty, the actual render runs on the
// next Get. This keeps the common-case redraw near-zero-cost — a redraw
// with no intervening events reads every segment straight from the map.
package segcache

import (
	"fmt"
	"sync"

	"gitlab.com/tinyland/lab/modeline/pkg/editor"
	"gitlab.com/tinyland/lab/modeline/pkg/event"
	"gitlab.com/tinyland/lab/modeline/pkg/segment"
)

// entryKey identifies one cached value.
type entryKey struct {
	name  string
	scope editor.Scope
}

// entry is the cached state for one (segment, scope) pair.
type entry struct {
	value string
	has   bool   // a successful render has been stored
	dirty bool   // a trigger fired since the last render
	gen   uint64 // redraw generation of the last render (volatile policy)
}

// Cache is the per-scope segment value store. All methods are safe for
// concurrent use, though the engine drives it from a single goroutine.
type Cache struct {
	registry *segment.Registry

	mu      sync.Mutex
	entries map[entryKey]*entry
	gen     uint64
}

// New returns an empty cache resolving segments against registry.
func New(registry *segment.Registry) *Cache {
	return &Cache{
		registry: registry,
		entries:  make(map[entryKey]*entry),
	}
}

// Bind subscribes the cache to a bus so that every event is matched against
// the current trigger declarations. Subscribing once to all events (rather
// than once per segment) means redeclaring a segment with new triggers
// needs no re-wiring.
func (c *Cache) Bind(bus *event.Bus) {
	bus.SubscribeAll(c.handle)
}

// BeginRedraw advances the redraw generation. The host calls this once per
// frame, before rendering its surfaces; volatile segments recompute at most
// once per generation for the focused surface.
func (c *Cache) BeginRedraw() {
	c.mu.Lock()
	c.gen++
	c.mu.Unlock()
}

// Get returns the current value for a segment in ctx.Scope, rendering it if
// the entry is missing, dirty, or due under the volatile policy. A render
// error (or panic) keeps the previous value; if there is none yet, the
// segment's Init value is returned. An unknown segment name renders as
// empty — a misconfigured preset never blanks the line.
func (c *Cache) Get(name string, ctx segment.Context) string {
	seg, ok := c.registry.Resolve(name)
	if !ok {
		return ""
	}

	key := entryKey{name: name, scope: ctx.Scope}

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{dirty: true}
		c.entries[key] = e
	}
	gen := c.gen

	need := e.dirty || !e.has
	if !need && seg.Volatile() && ctx.Active && e.gen != gen {
		// Volatile policy: with no declared triggers there is nothing to
		// mark the entry dirty, so the focused surface refreshes it every
		// redraw generation. Unfocused scopes keep the stale value; they
		// do not need up-to-the-keystroke accuracy.
		need = true
	}
	if !need {
		v := e.value
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	// Render outside the lock: render functions may call back into host
	// state and must not hold the cache hostage.
	v, err := safeRender(seg, ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		if e.has {
			return e.value
		}
		return seg.Init
	}
	e.value = v
	e.has = true
	e.dirty = false
	e.gen = gen
	return v
}

// Invalidate marks one (segment, scope) entry dirty without recomputing.
// Missing entries are a no-op; they will be computed fresh on first Get.
func (c *Cache) Invalidate(name string, scope editor.Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[entryKey{name: name, scope: scope}]; ok {
		e.dirty = true
	}
}

// InvalidateScope marks every entry for a scope dirty. Used when a scope's
// underlying state changed in a way not captured by fine-grained triggers
// (e.g. the surface switched buffers, or focus moved).
func (c *Cache) InvalidateScope(scope editor.Scope) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.scope == scope {
			e.dirty = true
		}
	}
}

// InvalidateSurface marks every entry on a surface dirty, across buffers.
func (c *Cache) InvalidateSurface(id editor.SurfaceID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if k.scope.Surface == id {
			e.dirty = true
		}
	}
}

// InvalidateAll marks every entry dirty. Used on theme changes, where any
// cached value may embed palette colors.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.dirty = true
	}
}

// DropBuffer removes every entry whose scope references the buffer. Called
// on buffer teardown so no stale reads can outlive the scope.
func (c *Cache) DropBuffer(id editor.BufferID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.scope.Buffer == id {
			delete(c.entries, k)
		}
	}
}

// DropSurface removes every entry whose scope references the surface.
func (c *Cache) DropSurface(id editor.SurfaceID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.scope.Surface == id {
			delete(c.entries, k)
		}
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// handle matches one delivered event against current trigger declarations.
// An event scoped to a surface and/or buffer dirties only matching scopes;
// a scopeless event dirties the segment everywhere.
func (c *Cache) handle(ev event.Event) {
	switch ev.Type {
	case event.BufferKilled:
		if ev.BufferID != "" {
			c.DropBuffer(editor.BufferID(ev.BufferID))
		}
		return
	case event.SurfaceClosed:
		if ev.SurfaceID != "" {
			c.DropSurface(editor.SurfaceID(ev.SurfaceID))
		}
		return
	}

	triggered := c.registry.TriggeredBy(ev.Type)
	if len(triggered) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, seg := range triggered {
		for k, e := range c.entries {
			if k.name != seg.Name {
				continue
			}
			if ev.SurfaceID != "" && k.scope.Surface != editor.SurfaceID(ev.SurfaceID) {
				continue
			}
			if ev.BufferID != "" && k.scope.Buffer != editor.BufferID(ev.BufferID) {
				continue
			}
			e.dirty = true
		}
	}
}

// safeRender invokes a render function, converting panics into errors so
// one broken segment cannot take down the redraw.
func safeRender(seg segment.Segment, ctx segment.Context) (v string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("segcache: segment %q panicked: %v", seg.Name, r)
		}
	}()
	if seg.Render == nil {
		return seg.Init, nil
	}
	return seg.Render(ctx)
}
