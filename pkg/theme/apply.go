package theme

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles derived from a Theme. Building styles is
// cheap but not free, so the engine constructs one Styles per theme change
// rather than per redraw.
type Styles struct {
	Active   lipgloss.Style // whole-line face on the focused surface
	Inactive lipgloss.Style // whole-line face elsewhere

	Accent    lipgloss.Style
	Highlight lipgloss.Style
	Dim       lipgloss.Style

	OK    lipgloss.Style
	Warn  lipgloss.Style
	Error lipgloss.Style
}

// NewStyles derives the render styles for a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Active: lipgloss.NewStyle().
			Background(lipgloss.Color(t.ActiveBG)).
			Foreground(lipgloss.Color(t.ActiveFG)),
		Inactive: lipgloss.NewStyle().
			Background(lipgloss.Color(t.InactiveBG)).
			Foreground(lipgloss.Color(t.InactiveFG)),

		Accent:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Highlight)),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color(t.Dim)),

		OK:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusOK)),
		Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusWarn)),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color(t.StatusError)),
	}
}

// Face returns the whole-line style for the given focus state.
func (s Styles) Face(active bool) lipgloss.Style {
	if active {
		return s.Active
	}
	return s.Inactive
}

// VCColor returns the hex color for a version-control state string.
func VCColor(t Theme, state string) string {
	switch state {
	case "conflict", "removed":
		return t.VCConflict
	case "edited", "added":
		return t.VCEdited
	default:
		return t.VCClean
	}
}
