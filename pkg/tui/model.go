// Package tui is the demo editor host: a Bubbletea program that carves
// the terminal into panes, gives each pane a simulated buffer, and draws
// a modeline under every pane through the engine. It exists to exercise
// the composition pipeline end to end — focus transitions, preset
// switching, theme cycling, poller-fed segments — without a real editor.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/modeline/pkg/editor"
	"gitlab.com/tinyland/lab/modeline/pkg/engine"
	"gitlab.com/tinyland/lab/modeline/pkg/event"
	"gitlab.com/tinyland/lab/modeline/pkg/layout"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/vcs"
	"gitlab.com/tinyland/lab/modeline/pkg/theme"
)

// minibufID is the transient prompting surface. Entering it must not move
// modeline focus off the editing pane.
const minibufID editor.SurfaceID = "minibuf"

// tickInterval drives periodic redraws for volatile segments (clock,
// position) on the focused surface.
const tickInterval = time.Second

type tickMsg time.Time

type pollerMsg pollers.Update

// pane couples a surface with the buffer it displays.
type pane struct {
	surface editor.Surface
	lines   []string
}

// Options configures the demo model.
type Options struct {
	Engine  *engine.Engine
	Sim     *editor.Sim
	Bus     *event.Bus
	Updates <-chan pollers.Update // may be nil when pollers are disabled
}

// Model is the Bubbletea model for the demo host.
type Model struct {
	eng *engine.Engine
	sim *editor.Sim
	bus *event.Bus

	updates <-chan pollers.Update
	zones   *zone.Manager

	width  int
	height int

	panes    []pane
	focusIdx int

	minibuf   textinput.Model
	prompting bool
	searching bool
}

// New builds the demo model with three panes over simulated buffers.
func New(opts Options) *Model {
	ti := textinput.New()
	ti.Prompt = ":"
	ti.CharLimit = 120

	m := &Model{
		eng:     opts.Engine,
		sim:     opts.Sim,
		bus:     opts.Bus,
		updates: opts.Updates,
		zones:   zone.New(),
		minibuf: ti,
	}
	m.seedBuffers()
	m.focusPane(0)
	return m
}

// seedBuffers opens the simulated buffers and creates one pane each.
func (m *Model) seedBuffers() {
	buffers := []editor.BufferInfo{
		{
			ID: "engine.go", Name: "engine.go", Path: "/src/engine.go",
			Mode: "Go", Encoding: "utf-8", EOL: "LF", Size: 4212,
		},
		{
			ID: "NOTES.org", Name: "NOTES.org", Path: "/doc/NOTES.org",
			Mode: "Org", Encoding: "utf-8", EOL: "LF", Size: 1380, Modified: true,
		},
		{
			ID: "deploy.yaml", Name: "deploy.yaml", Path: "/ops/deploy.yaml",
			Mode: "YAML", Encoding: "utf-8", EOL: "LF", Size: 760, ReadOnly: true,
		},
	}
	content := [][]string{
		{"package engine", "", "func New(opts Options) *Engine {", "\t// ..."},
		{"* Notes", "** Modeline rework", "   - cache per scope", "   - lazy invalidation"},
		{"apiVersion: apps/v1", "kind: Deployment", "metadata:", "  name: modeline"},
	}

	ids := []editor.SurfaceID{"win-1", "win-2", "win-3"}
	for i, info := range buffers {
		m.sim.OpenBuffer(info)
		m.sim.SetPosition(editor.Scope{Surface: ids[i], Buffer: info.ID},
			editor.Position{Line: 1, Column: 0, Percent: 0})
		m.panes = append(m.panes, pane{
			surface: editor.Surface{ID: ids[i], Buffer: info.ID, Kind: editor.KindNormal},
			lines:   content[i],
		})
	}
	m.sim.SetVCS("engine.go", editor.VCSInfo{Backend: "Git", Branch: "main", State: editor.VCSEdited})
	m.sim.SetChecker("engine.go", editor.CheckerInfo{Warnings: 2})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tickCmd()}
	if m.updates != nil {
		cmds = append(cmds, m.waitForUpdate())
	}
	return tea.Batch(cmds...)
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForUpdate blocks on the poller channel as a command, re-armed after
// every delivery. This is the only path poller data takes into the UI
// goroutine.
func (m *Model) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		u, ok := <-m.updates
		if !ok {
			return nil
		}
		return pollerMsg(u)
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if m.prompting {
			return m.updateMinibuffer(msg)
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			for i := range m.panes {
				if m.zones.Get(string(m.panes[i].surface.ID)).InBounds(msg) {
					m.focusPane(i)
					break
				}
			}
		}
		return m, nil

	case tea.FocusMsg:
		m.bus.Emit(event.Event{Type: event.AppFocusGained})
		return m, nil

	case tea.BlurMsg:
		m.bus.Emit(event.Event{Type: event.AppFocusLost})
		return m, nil

	case tickMsg:
		return m, m.tickCmd()

	case pollerMsg:
		m.applyPollerUpdate(pollers.Update(msg))
		return m, m.waitForUpdate()
	}
	return m, nil
}

// applyPollerUpdate routes a poller result into host state. Most sources
// land as opaque snapshots read by their segment; the vcs poller maps onto
// the focused buffer's VCS state so the "vc" segment shows the live repo
// instead of the seeded demo value.
func (m *Model) applyPollerUpdate(u pollers.Update) {
	if u.Err != nil || u.Data == nil {
		return
	}
	if snap, ok := u.Data.(vcs.Snapshot); ok {
		m.sim.SetVCS(m.focusedPane().surface.Buffer, editor.VCSInfo{
			Backend: snap.Backend,
			Branch:  snap.Branch,
			State:   editor.VCSState(snap.State),
		})
		return
	}
	m.sim.PublishSnapshot(u.Source, u.Data, u.Refresh)
}

// handleKey processes keys outside minibuffer prompting.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.focusPane((m.focusIdx + 1) % len(m.panes))

	case "shift+tab":
		m.focusPane((m.focusIdx + len(m.panes) - 1) % len(m.panes))

	case "t":
		m.cycleTheme()

	case "p":
		m.cyclePreset()

	case ":":
		m.openMinibuffer(":", false)

	case "/":
		m.openMinibuffer("/", true)

	case "m":
		b := m.focusedPane().surface.Buffer
		if info, ok := m.sim.Buffer(b); ok {
			m.sim.SetModified(b, !info.Modified)
		}

	case "w":
		m.sim.SetModified(m.focusedPane().surface.Buffer, false)

	case "up", "down", "left", "right":
		m.moveCursor(msg.String())
	}
	return m, nil
}

// updateMinibuffer routes keys into the transient prompt.
func (m *Model) updateMinibuffer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.closeMinibuffer()
		return m, nil
	}
	var cmd tea.Cmd
	m.minibuf, cmd = m.minibuf.Update(msg)
	if m.searching {
		m.publishSearch(m.minibuf.Value())
	}
	return m, cmd
}

// openMinibuffer enters the transient prompting surface. The focus
// tracker ignores the transition, so the pane that owned focus keeps its
// active modeline while the prompt is up.
func (m *Model) openMinibuffer(prompt string, searching bool) {
	m.prompting = true
	m.searching = searching
	m.minibuf.Prompt = prompt
	m.minibuf.SetValue("")
	m.minibuf.Focus()
	m.bus.Emit(event.Event{
		Type:      event.SurfaceEntered,
		SurfaceID: string(minibufID),
		Data: editor.Surface{
			ID:        minibufID,
			Kind:      editor.KindTransient,
			Prompting: true,
		},
	})
}

func (m *Model) closeMinibuffer() {
	m.prompting = false
	m.minibuf.Blur()
	if m.searching {
		m.searching = false
		m.sim.SetSearch(m.focusedPane().surface.Scope(), editor.SearchInfo{})
	}
	m.bus.Emit(event.Event{
		Type:      event.SurfaceClosed,
		SurfaceID: string(minibufID),
	})
}

// publishSearch fakes incremental search: the match count tracks query
// length so the segment has something to show.
func (m *Model) publishSearch(query string) {
	sc := m.focusedPane().surface.Scope()
	if query == "" {
		m.sim.SetSearch(sc, editor.SearchInfo{Active: true})
		return
	}
	total := len(query)%5 + 1
	m.sim.SetSearch(sc, editor.SearchInfo{
		Active:  true,
		Query:   query,
		Current: 1,
		Total:   total,
	})
}

func (m *Model) focusedPane() *pane {
	return &m.panes[m.focusIdx]
}

// focusPane moves focus to pane i and announces the transition.
func (m *Model) focusPane(i int) {
	m.focusIdx = i
	s := m.panes[i].surface
	m.bus.Emit(event.Event{
		Type:      event.SurfaceEntered,
		SurfaceID: string(s.ID),
		Data:      s,
	})
}

// resize recomputes pane geometry: one column left, two stacked right,
// one minibuffer row at the bottom.
func (m *Model) resize(w, h int) {
	m.width = w
	m.height = h

	body := layout.Rect{X: 0, Y: 0, Width: w, Height: h - 1}
	cols := layout.SplitHorizontal(body, layout.Percentage{Value: 50}, layout.Fill{})
	rows := layout.SplitVertical(cols[1], layout.Fill{}, layout.Fill{})

	rects := []layout.Rect{cols[0], rows[0], rows[1]}
	for i := range m.panes {
		m.panes[i].surface.Width = rects[i].Width
		m.panes[i].surface.Height = rects[i].Height
	}

	s := m.focusedPane().surface
	m.bus.Emit(event.Event{
		Type:      event.WindowConfigChanged,
		SurfaceID: string(s.ID),
		Data:      s,
	})
}

// cycleTheme advances to the next registered theme name.
func (m *Model) cycleTheme() {
	names := theme.Names()
	cur := m.eng.Theme().Name
	for i, n := range names {
		if n == cur {
			m.eng.SetTheme(names[(i+1)%len(names)])
			return
		}
	}
	if len(names) > 0 {
		m.eng.SetTheme(names[0])
	}
}

// cyclePreset advances the focused surface to the next preset.
func (m *Model) cyclePreset() {
	names := m.eng.Presets().Names()
	if len(names) == 0 {
		return
	}
	id := m.focusedPane().surface.ID
	cur := m.eng.Format(id).PresetName
	next := names[0]
	for i, n := range names {
		if n == cur {
			next = names[(i+1)%len(names)]
			break
		}
	}
	m.eng.AssignPreset(id, next)
}

// moveCursor nudges the simulated cursor in the focused buffer. Position
// is volatile state: no event fires, the next redraw picks it up.
func (m *Model) moveCursor(key string) {
	sc := m.focusedPane().surface.Scope()
	p := m.sim.Position(sc)
	switch key {
	case "up":
		if p.Line > 1 {
			p.Line--
		}
	case "down":
		p.Line++
	case "left":
		if p.Column > 0 {
			p.Column--
		}
	case "right":
		p.Column++
	}
	total := len(m.focusedPane().lines)
	if total > 0 {
		p.Percent = (p.Line - 1) * 100 / total
		if p.Percent > 100 {
			p.Percent = 100
		}
	}
	m.sim.SetPosition(sc, p)
}
