// Package engine owns the modeline rendering pipeline: one Engine instance
// holds the segment registry, per-scope value cache, focus tracker, preset
// registry, theme, and bar decoration, with a lifecycle tied to the host
// application rather than ambient globals. All methods are called from the
// host's UI goroutine; background pollers reach the engine only through
// events the host drains on that same goroutine.
package engine

import (
	"gitlab.com/tinyland/lab/modeline/pkg/bar"
	"gitlab.com/tinyland/lab/modeline/pkg/editor"
	"gitlab.com/tinyland/lab/modeline/pkg/event"
	"gitlab.com/tinyland/lab/modeline/pkg/focus"
	"gitlab.com/tinyland/lab/modeline/pkg/format"
	"gitlab.com/tinyland/lab/modeline/pkg/preset"
	"gitlab.com/tinyland/lab/modeline/pkg/segcache"
	"gitlab.com/tinyland/lab/modeline/pkg/segment"
	"gitlab.com/tinyland/lab/modeline/pkg/theme"
)

// Options configures a new Engine.
type Options struct {
	// State is the host's read-only state query interface. Required.
	State editor.StateReader

	// Bus carries invalidation events. When nil a new bus is created;
	// pass the bus the host (or Sim) emits into.
	Bus *event.Bus

	// Theme names the initial palette; empty means "default".
	Theme string

	// Bar configures the decoration block; the zero value hides it.
	Bar bar.Config

	// DefaultPreset is assigned to surfaces the host never explicitly
	// assigned. Empty or "auto" picks a preset from the surface's width
	// at first render (preset.Select).
	DefaultPreset string
}

// Engine composes segments into status lines for the host's surfaces.
type Engine struct {
	bus      *event.Bus
	registry *segment.Registry
	cache    *segcache.Cache
	tracker  *focus.Tracker
	presets  *preset.Registry
	state    editor.StateReader

	th     theme.Theme
	styles theme.Styles
	bar    *bar.Bar

	defaultPreset string
	formats       map[editor.SurfaceID]*format.State
}

// New builds an engine and wires the cache and focus handling to the bus.
func New(opts Options) *Engine {
	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus()
	}
	th := theme.Get(opts.Theme)
	registry := segment.NewRegistry()
	cache := segcache.New(registry)
	cache.Bind(bus)

	e := &Engine{
		bus:           bus,
		registry:      registry,
		cache:         cache,
		tracker:       focus.NewTracker(),
		presets:       preset.NewRegistry(),
		state:         opts.State,
		th:            th,
		styles:        theme.NewStyles(th),
		bar:           bar.New(opts.Bar, th),
		defaultPreset: opts.DefaultPreset,
		formats:       make(map[editor.SurfaceID]*format.State),
	}
	e.subscribe()
	return e
}

// Bus returns the engine's event bus.
func (e *Engine) Bus() *event.Bus { return e.bus }

// Registry returns the segment registry for feature packages to declare
// into.
func (e *Engine) Registry() *segment.Registry { return e.registry }

// Focus returns the focus tracker.
func (e *Engine) Focus() *focus.Tracker { return e.tracker }

// Theme returns the palette in effect.
func (e *Engine) Theme() theme.Theme { return e.th }

// DeclareSegment registers or overwrites a segment.
func (e *Engine) DeclareSegment(s segment.Segment) {
	e.registry.Declare(s)
}

// DefinePreset registers or overwrites a preset.
func (e *Engine) DefinePreset(p preset.Preset) {
	e.presets.Define(p)
}

// Presets returns the preset registry.
func (e *Engine) Presets() *preset.Registry { return e.presets }

// AssignPreset gives a surface a fresh format state built from the named
// preset (with fallback resolution). Any prior per-surface list edits are
// discarded.
func (e *Engine) AssignPreset(id editor.SurfaceID, name string) {
	e.formats[id] = format.NewState(e.presets.Get(name))
}

// Format returns the surface's working format state, assigning the default
// preset on first use. Width-based auto-selection happens in Render, where
// geometry is known; here an auto default resolves through the registry's
// "main" fallback. The returned state may be edited in place; edits affect
// only this surface.
func (e *Engine) Format(id editor.SurfaceID) *format.State {
	st, ok := e.formats[id]
	if !ok {
		st = format.NewState(e.presets.Get(e.defaultPreset))
		e.formats[id] = st
	}
	return st
}

// SetTheme switches the palette. Every cached value may embed the old
// palette's colors, so the whole cache is marked dirty.
func (e *Engine) SetTheme(name string) {
	e.th = theme.Get(name)
	e.styles = theme.NewStyles(e.th)
	e.bar.SetTheme(e.th)
	e.cache.InvalidateAll()
}

// SetBarConfig reconfigures the decoration block.
func (e *Engine) SetBarConfig(cfg bar.Config) {
	e.bar.SetConfig(cfg)
}

// BeginRedraw starts a new redraw generation. The host calls this once per
// frame before rendering its surfaces; within one generation a volatile
// segment renders at most once per scope.
func (e *Engine) BeginRedraw() {
	e.cache.BeginRedraw()
}

// Render assembles the status line for a surface. Geometry comes from the
// passed surface value, queried by the host at render time. A surface never
// given an explicit AssignPreset gets the default preset here, resolved by
// surface width when the default is "auto" or unset. The result's visible
// width equals s.Width whenever the content fits.
func (e *Engine) Render(s editor.Surface) string {
	st, ok := e.formats[s.ID]
	if !ok {
		st = format.NewState(e.presets.Get(preset.Select(e.defaultPreset, s.Width)))
		e.formats[s.ID] = st
	}
	active := e.tracker.IsActive(s.ID)

	ctx := segment.Context{
		Scope:  s.Scope(),
		Width:  s.Width,
		Active: active,
		Theme:  e.th,
		State:  e.state,
	}

	value := func(name string) string {
		v := e.cache.Get(name, ctx)
		if v == "" {
			return ""
		}
		if seg, ok := e.registry.Resolve(name); ok && seg.Styled {
			return e.styles.Face(active).Render(v)
		}
		return v
	}

	avail := s.Width - e.bar.Width()
	line := format.Assemble(st.Left, st.Right, avail, value)

	block := e.bar.Render(active)
	if block == "" {
		return line
	}
	if e.bar.Config().Placement == bar.PlaceEnd {
		return line + block
	}
	return block + line
}

// RemoveSurface tears down all per-surface state: cache entries, format
// state, and focus if the surface held it.
func (e *Engine) RemoveSurface(id editor.SurfaceID) {
	e.cache.DropSurface(id)
	e.tracker.SurfaceClosed(id)
	delete(e.formats, id)
}

// RemoveBuffer drops every cache entry scoped to the buffer.
func (e *Engine) RemoveBuffer(id editor.BufferID) {
	e.cache.DropBuffer(id)
}

// subscribe wires focus transitions and teardown to the bus. Cache
// invalidation for segment triggers is wired separately by the cache
// itself.
func (e *Engine) subscribe() {
	enter := func(ev event.Event) {
		s, ok := ev.Data.(editor.Surface)
		if !ok {
			return
		}
		prev, changed := e.tracker.Enter(s)
		if changed {
			// Styled content and ctx.Active-dependent values on both
			// surfaces are stale now. Focus moves are rare; dirtying
			// both surfaces wholesale is cheap and always correct.
			if prev != "" {
				e.cache.InvalidateSurface(prev)
			}
			e.cache.InvalidateSurface(s.ID)
		}
	}
	e.bus.Subscribe(event.SurfaceEntered, enter)
	e.bus.Subscribe(event.WindowConfigChanged, enter)

	e.bus.Subscribe(event.AppFocusLost, func(event.Event) {
		prev, _ := e.tracker.Current()
		if e.tracker.AppFocusLost() && prev != "" {
			e.cache.InvalidateSurface(prev)
		}
	})

	e.bus.Subscribe(event.AppFocusGained, func(ev event.Event) {
		var selected editor.SurfaceID
		switch v := ev.Data.(type) {
		case editor.SurfaceID:
			selected = v
		case string:
			selected = editor.SurfaceID(v)
		}
		if e.tracker.AppFocusGained(selected) {
			if cur, ok := e.tracker.Current(); ok {
				e.cache.InvalidateSurface(cur)
			}
		}
	})

	e.bus.Subscribe(event.SurfaceClosed, func(ev event.Event) {
		if ev.SurfaceID != "" {
			id := editor.SurfaceID(ev.SurfaceID)
			e.tracker.SurfaceClosed(id)
			delete(e.formats, id)
		}
	})
}
