package engine

import (
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/modeline/pkg/bar"
	"gitlab.com/tinyland/lab/modeline/pkg/components"
	"gitlab.com/tinyland/lab/modeline/pkg/editor"
	"gitlab.com/tinyland/lab/modeline/pkg/event"
	"gitlab.com/tinyland/lab/modeline/pkg/preset"
	"gitlab.com/tinyland/lab/modeline/pkg/segment"
)

// enFixture is a bus, a simulated host, and an engine wired together the
// way main.go wires them.
type enFixture struct {
	bus *event.Bus
	sim *editor.Sim
	eng *Engine
}

func enNew(t *testing.T) *enFixture {
	t.Helper()
	bus := event.NewBus()
	sim := editor.NewSim(bus)
	eng := New(Options{State: sim, Bus: bus})
	return &enFixture{bus: bus, sim: sim, eng: eng}
}

func (f *enFixture) enter(s editor.Surface) {
	ev := event.New(event.SurfaceEntered)
	ev.SurfaceID = string(s.ID)
	ev.Data = s
	f.bus.Emit(ev)
}

// enCounting declares a triggerless counting segment so tests can observe
// how often the cache actually calls render.
func (f *enFixture) enCounting(name string, triggers ...event.Type) *int {
	n := 0
	f.eng.DeclareSegment(segment.Segment{
		Name: name,
		Render: func(segment.Context) (string, error) {
			n++
			return name, nil
		},
		Triggers: triggers,
	})
	return &n
}

func enSurface(id editor.SurfaceID, buf editor.BufferID, width int) editor.Surface {
	return editor.Surface{ID: id, Buffer: buf, Width: width}
}

// --- Render width ---

func TestRenderFillsSurfaceWidth(t *testing.T) {
	f := enNew(t)
	f.eng.DeclareSegment(segment.Segment{
		Name:   "name",
		Render: func(segment.Context) (string, error) { return " a.txt ", nil },
	})
	f.eng.DeclareSegment(segment.Segment{
		Name:   "mode",
		Render: func(segment.Context) (string, error) { return " Go ", nil },
	})
	f.eng.DefinePreset(preset.Preset{Name: "two", Left: []string{"name"}, Right: []string{"mode"}})

	s := enSurface("win-1", "b1", 40)
	f.eng.AssignPreset(s.ID, "two")
	f.eng.BeginRedraw()

	line := f.eng.Render(s)
	if got := components.VisibleLen(line); got != 40 {
		t.Errorf("visible width = %d, want 40", got)
	}
	if !strings.Contains(line, "a.txt") || !strings.Contains(line, "Go") {
		t.Errorf("line = %q", line)
	}
}

func TestRenderBarCountsTowardWidth(t *testing.T) {
	bus := event.NewBus()
	sim := editor.NewSim(bus)
	eng := New(Options{State: sim, Bus: bus, Bar: bar.DefaultConfig()})
	eng.DeclareSegment(segment.Segment{
		Name:   "name",
		Render: func(segment.Context) (string, error) { return " x ", nil },
	})
	eng.DefinePreset(preset.Preset{Name: "p", Left: []string{"name"}})

	s := enSurface("win-1", "b1", 40)
	eng.AssignPreset(s.ID, "p")
	eng.BeginRedraw()

	if got := components.VisibleLen(eng.Render(s)); got != 40 {
		t.Errorf("visible width with bar = %d, want 40", got)
	}
}

func TestRenderBarPlacementEnd(t *testing.T) {
	bus := event.NewBus()
	sim := editor.NewSim(bus)
	cfg := bar.DefaultConfig()
	cfg.Placement = bar.PlaceEnd
	eng := New(Options{State: sim, Bus: bus, Bar: cfg})
	eng.DeclareSegment(segment.Segment{
		Name:   "name",
		Render: func(segment.Context) (string, error) { return "x", nil },
	})
	eng.DefinePreset(preset.Preset{Name: "p", Left: []string{"name"}})

	s := enSurface("win-1", "b1", 20)
	eng.AssignPreset(s.ID, "p")
	eng.BeginRedraw()

	barBlock := bar.New(cfg, eng.Theme()).Render(false)
	line := eng.Render(s)
	if !strings.HasSuffix(line, barBlock) {
		t.Errorf("bar not at end of line: %q", line)
	}
}

// --- Caching across redraws ---

func TestTriggeredSegmentRendersOnceUntilEvent(t *testing.T) {
	f := enNew(t)
	n := f.enCounting("vc", event.VCSRefreshed)
	f.eng.DefinePreset(preset.Preset{Name: "p", Left: []string{"vc"}})

	s := enSurface("win-1", "b1", 30)
	f.eng.AssignPreset(s.ID, "p")

	f.eng.BeginRedraw()
	f.eng.Render(s)
	f.eng.BeginRedraw()
	f.eng.Render(s)
	if *n != 1 {
		t.Fatalf("render count = %d, want 1", *n)
	}

	f.sim.SetVCS("b1", editor.VCSInfo{Branch: "main", State: editor.VCSEdited})
	f.eng.BeginRedraw()
	f.eng.Render(s)
	if *n != 2 {
		t.Errorf("render count after event = %d, want 2", *n)
	}
}

func TestVolatileSegmentPerGenerationOnFocused(t *testing.T) {
	f := enNew(t)
	n := f.enCounting("pos")
	f.eng.DefinePreset(preset.Preset{Name: "p", Left: []string{"pos"}})

	s := enSurface("win-1", "b1", 30)
	f.eng.AssignPreset(s.ID, "p")
	f.enter(s)

	f.eng.BeginRedraw()
	f.eng.Render(s)
	f.eng.Render(s)
	if *n != 1 {
		t.Fatalf("render count within generation = %d, want 1", *n)
	}

	f.eng.BeginRedraw()
	f.eng.Render(s)
	if *n != 2 {
		t.Errorf("render count in next generation = %d, want 2", *n)
	}
}

func TestVolatileSegmentStaysCachedOnUnfocused(t *testing.T) {
	f := enNew(t)
	n := f.enCounting("pos")
	f.eng.DefinePreset(preset.Preset{Name: "p", Left: []string{"pos"}})

	focused := enSurface("win-1", "b1", 30)
	other := enSurface("win-2", "b2", 30)
	f.eng.AssignPreset(focused.ID, "p")
	f.eng.AssignPreset(other.ID, "p")
	f.enter(focused)

	f.eng.BeginRedraw()
	f.eng.Render(other)
	f.eng.BeginRedraw()
	f.eng.Render(other)
	f.eng.BeginRedraw()
	f.eng.Render(other)
	if *n != 1 {
		t.Errorf("unfocused volatile render count = %d, want 1", *n)
	}
}

// --- Focus transitions ---

func TestFocusMoveInvalidatesBothSurfaces(t *testing.T) {
	f := enNew(t)
	n := f.enCounting("vc", event.VCSRefreshed)
	f.eng.DefinePreset(preset.Preset{Name: "p", Left: []string{"vc"}})

	a := enSurface("win-1", "b1", 30)
	b := enSurface("win-2", "b2", 30)
	f.eng.AssignPreset(a.ID, "p")
	f.eng.AssignPreset(b.ID, "p")
	f.enter(a)

	f.eng.BeginRedraw()
	f.eng.Render(a)
	f.eng.Render(b)
	if *n != 2 {
		t.Fatalf("initial render count = %d, want 2", *n)
	}

	f.enter(b)
	f.eng.BeginRedraw()
	f.eng.Render(a)
	f.eng.Render(b)
	if *n != 4 {
		t.Errorf("render count after focus move = %d, want 4", *n)
	}
}

func TestPromptingTransientDoesNotStealFocus(t *testing.T) {
	f := enNew(t)
	a := enSurface("win-1", "b1", 30)
	f.enter(a)

	mini := editor.Surface{ID: "minibuf", Kind: editor.KindTransient, Prompting: true, Width: 30}
	f.enter(mini)

	if !f.eng.Focus().IsActive(a.ID) {
		t.Error("prompting transient surface stole focus")
	}
}

func TestAppFocusRoundTripRestoresSelection(t *testing.T) {
	f := enNew(t)
	a := enSurface("win-1", "b1", 30)
	f.enter(a)

	f.bus.Emit(event.New(event.AppFocusLost))
	if f.eng.Focus().IsActive(a.ID) {
		t.Fatal("surface still active after app focus loss")
	}

	f.bus.Emit(event.New(event.AppFocusGained))
	if !f.eng.Focus().IsActive(a.ID) {
		t.Error("focus not restored to last selected surface")
	}
}

// --- Theme ---

func TestSetThemeInvalidatesCache(t *testing.T) {
	f := enNew(t)
	n := f.enCounting("vc", event.VCSRefreshed)
	f.eng.DefinePreset(preset.Preset{Name: "p", Left: []string{"vc"}})

	s := enSurface("win-1", "b1", 30)
	f.eng.AssignPreset(s.ID, "p")
	f.eng.BeginRedraw()
	f.eng.Render(s)

	f.eng.SetTheme("gruvbox")
	if f.eng.Theme().Name != "gruvbox" {
		t.Fatalf("Theme = %q", f.eng.Theme().Name)
	}
	f.eng.BeginRedraw()
	f.eng.Render(s)
	if *n != 2 {
		t.Errorf("render count after theme change = %d, want 2", *n)
	}
}

// --- Preset assignment ---

func TestRenderAutoSelectsPresetByWidth(t *testing.T) {
	f := enNew(t)

	// No DefaultPreset configured and no AssignPreset call: the first
	// render picks a builtin preset from each surface's width.
	f.eng.BeginRedraw()
	f.eng.Render(enSurface("win-1", "b1", 40))
	f.eng.Render(enSurface("win-2", "b2", 160))
	f.eng.Render(enSurface("win-3", "b3", 80))

	wants := map[editor.SurfaceID]string{
		"win-1": "minimal",
		"win-2": "infra",
		"win-3": "main",
	}
	for id, want := range wants {
		if got := f.eng.Format(id).PresetName; got != want {
			t.Errorf("surface %s preset = %q, want %q", id, got, want)
		}
	}
}

func TestRenderConfiguredDefaultPresetWins(t *testing.T) {
	bus := event.NewBus()
	sim := editor.NewSim(bus)
	eng := New(Options{State: sim, Bus: bus, DefaultPreset: "vc"})

	eng.BeginRedraw()
	eng.Render(enSurface("win-1", "b1", 40)) // narrow, but not auto
	if got := eng.Format("win-1").PresetName; got != "vc" {
		t.Errorf("preset = %q, want vc", got)
	}
}

func TestFormatDefaultsAndIsolation(t *testing.T) {
	f := enNew(t)
	f.eng.DefinePreset(preset.Preset{Name: "main", Left: []string{"a", "b"}})

	one := f.eng.Format("win-1")
	two := f.eng.Format("win-2")
	one.InsertLeft("extra", 0)

	if two.Contains("extra") {
		t.Error("per-surface edit leaked to another surface")
	}
	if !f.eng.Format("win-1").Contains("extra") {
		t.Error("Format did not return the same working state")
	}
}

func TestAssignPresetDiscardsEdits(t *testing.T) {
	f := enNew(t)
	f.eng.DefinePreset(preset.Preset{Name: "main", Left: []string{"a"}})

	f.eng.Format("win-1").InsertLeft("extra", 0)
	f.eng.AssignPreset("win-1", "main")
	if f.eng.Format("win-1").Contains("extra") {
		t.Error("AssignPreset kept a stale edit")
	}
}

// --- Teardown ---

func TestRemoveSurfaceDropsState(t *testing.T) {
	f := enNew(t)
	n := f.enCounting("vc", event.VCSRefreshed)
	f.eng.DefinePreset(preset.Preset{Name: "p", Left: []string{"vc"}})

	s := enSurface("win-1", "b1", 30)
	f.eng.AssignPreset(s.ID, "p")
	f.enter(s)
	f.eng.BeginRedraw()
	f.eng.Render(s)

	f.eng.RemoveSurface(s.ID)
	if f.eng.Focus().IsActive(s.ID) {
		t.Error("removed surface still focused")
	}

	// Reopening the surface starts from scratch.
	f.eng.AssignPreset(s.ID, "p")
	f.eng.BeginRedraw()
	f.eng.Render(s)
	if *n != 2 {
		t.Errorf("render count after surface removal = %d, want 2 (cache dropped)", *n)
	}
}

func TestRemoveBufferDropsScopedEntries(t *testing.T) {
	f := enNew(t)
	n := f.enCounting("vc", event.VCSRefreshed)
	f.eng.DefinePreset(preset.Preset{Name: "p", Left: []string{"vc"}})

	s := enSurface("win-1", "b1", 30)
	f.eng.AssignPreset(s.ID, "p")
	f.eng.BeginRedraw()
	f.eng.Render(s)

	f.eng.RemoveBuffer("b1")
	f.eng.BeginRedraw()
	f.eng.Render(s)
	if *n != 2 {
		t.Errorf("render count after buffer removal = %d, want 2", *n)
	}
}

// --- Clock scenario ---

func TestClockStyleSegmentAcrossGenerations(t *testing.T) {
	f := enNew(t)
	f.eng.DeclareSegment(segment.Segment{
		Name: "clock",
		Render: func(ctx segment.Context) (string, error) {
			return ctx.State.Now().Format("15:04"), nil
		},
	})
	f.eng.DefinePreset(preset.Preset{Name: "p", Right: []string{"clock"}})

	s := enSurface("win-1", "b1", 30)
	f.eng.AssignPreset(s.ID, "p")
	f.enter(s)

	f.sim.SetNow(time.Date(2026, 8, 25, 14, 3, 10, 0, time.UTC))
	f.eng.BeginRedraw()
	first := f.eng.Render(s)
	if !strings.Contains(first, "14:03") {
		t.Fatalf("line = %q", first)
	}

	// Same minute, next frame: new generation picks up the same text.
	f.sim.AdvanceTime(20 * time.Second)
	f.eng.BeginRedraw()
	if got := f.eng.Render(s); got != first {
		t.Errorf("same-minute render differs:\n got %q\nwant %q", got, first)
	}

	// Minute rollover.
	f.sim.AdvanceTime(40 * time.Second)
	f.eng.BeginRedraw()
	if got := f.eng.Render(s); !strings.Contains(got, "14:04") {
		t.Errorf("line after rollover = %q", got)
	}
}
