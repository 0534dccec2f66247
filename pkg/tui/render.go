package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/modeline/pkg/components"
)

// View implements tea.Model. One redraw generation per frame: volatile
// segments on the focused surface recompute here at most once however
// many panes share them.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	m.eng.BeginRedraw()

	views := make([]string, len(m.panes))
	for i := range m.panes {
		views[i] = m.renderPane(i)
	}

	right := lipgloss.JoinVertical(lipgloss.Left, views[1], views[2])
	body := lipgloss.JoinHorizontal(lipgloss.Top, views[0], right)

	return m.zones.Scan(body + "\n" + m.renderMinibuffer())
}

// renderPane draws one pane: buffer content above, modeline below, marked
// as a click zone.
func (m *Model) renderPane(i int) string {
	p := &m.panes[i]
	w, h := p.surface.Width, p.surface.Height
	if w <= 0 || h <= 0 {
		return ""
	}

	active := i == m.focusIdx
	contentRows := h - 1

	rows := make([]string, 0, h)
	for r := 0; r < contentRows; r++ {
		line := ""
		if r < len(p.lines) {
			line = p.lines[r]
		}
		line = components.PadRight(components.Truncate(line, w), w)
		if !active {
			line = components.Dim(line)
		}
		rows = append(rows, line)
	}
	rows = append(rows, m.eng.Render(p.surface))

	return m.zones.Mark(string(p.surface.ID), strings.Join(rows, "\n"))
}

// renderMinibuffer draws the bottom echo area: the prompt while it is
// open, key hints otherwise.
func (m *Model) renderMinibuffer() string {
	if m.prompting {
		return components.Truncate(m.minibuf.View(), m.width)
	}
	hints := "tab:focus  p:preset  t:theme  ::eval  /:search  m:modify  q:quit"
	return components.Dim(components.PadRight(components.Truncate(hints, m.width), m.width))
}
