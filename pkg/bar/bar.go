// Package bar renders the fixed-size colored block at one end of the
// modeline. The block carries no content; it exists to give the line a
// visual anchor whose color tracks focus. The rendered form is regenerated
// only when configuration or theme changes, never per redraw, but its width
// always counts toward the assembled line's total.
package bar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/modeline/pkg/theme"
)

// Placement selects which end of the line the bar occupies.
type Placement int

const (
	// PlaceStart puts the bar before the left segments.
	PlaceStart Placement = iota
	// PlaceEnd puts the bar after the right segments.
	PlaceEnd
)

// Config controls the bar's geometry and visibility.
type Config struct {
	Width     int
	Height    int // reserved for hosts with taller status areas; rendering is one line
	Placement Placement
	Visible   bool
}

// DefaultConfig returns a 3-cell visible bar at the start of the line.
func DefaultConfig() Config {
	return Config{Width: 3, Height: 1, Placement: PlaceStart, Visible: true}
}

// Bar is the cached decoration block. Not safe for concurrent use; the
// engine owns it on the UI goroutine.
type Bar struct {
	cfg      Config
	th       theme.Theme
	active   string
	inactive string
}

// New builds a bar and pre-renders both focus variants.
func New(cfg Config, th theme.Theme) *Bar {
	b := &Bar{cfg: cfg, th: th}
	b.regenerate()
	return b
}

// SetConfig swaps the configuration, regenerating the cached blocks only
// when something actually changed.
func (b *Bar) SetConfig(cfg Config) {
	if cfg == b.cfg {
		return
	}
	b.cfg = cfg
	b.regenerate()
}

// SetTheme swaps the palette, regenerating the cached blocks only when the
// bar colors changed.
func (b *Bar) SetTheme(th theme.Theme) {
	if th.BarActive == b.th.BarActive && th.BarInactive == b.th.BarInactive {
		b.th = th
		return
	}
	b.th = th
	b.regenerate()
}

// Config returns the current configuration.
func (b *Bar) Config() Config {
	return b.cfg
}

// Width returns the cells the bar occupies on the line; zero when hidden.
func (b *Bar) Width() int {
	if !b.cfg.Visible {
		return 0
	}
	return b.cfg.Width
}

// Render returns the pre-rendered block for the given focus state, or ""
// when the bar is hidden.
func (b *Bar) Render(active bool) string {
	if !b.cfg.Visible {
		return ""
	}
	if active {
		return b.active
	}
	return b.inactive
}

// regenerate rebuilds both cached blocks from the current config and theme.
func (b *Bar) regenerate() {
	if !b.cfg.Visible || b.cfg.Width <= 0 {
		b.active, b.inactive = "", ""
		return
	}
	blank := strings.Repeat(" ", b.cfg.Width)
	b.active = lipgloss.NewStyle().
		Background(lipgloss.Color(b.th.BarActive)).
		Render(blank)
	b.inactive = lipgloss.NewStyle().
		Background(lipgloss.Color(b.th.BarInactive)).
		Render(blank)
}
