package segments

import (
	"fmt"

	"gitlab.com/tinyland/lab/modeline/pkg/components"
	"gitlab.com/tinyland/lab/modeline/pkg/event"
	"gitlab.com/tinyland/lab/modeline/pkg/segment"
)

// Position shows "line:column percent". It declares no triggers: the
// cursor moves on nearly every keystroke, so the segment is volatile —
// refreshed each redraw generation on the focused surface, left as-is on
// unfocused ones.
func Position() segment.Segment {
	return segment.Segment{
		Name: "position",
		Render: func(ctx segment.Context) (string, error) {
			p := ctx.State.Position(ctx.Scope)
			if p.Line == 0 {
				return "", nil
			}
			pct := fmt.Sprintf("%d%%", p.Percent)
			switch p.Percent {
			case 0:
				pct = "Top"
			case 100:
				pct = "Bot"
			}
			return fmt.Sprintf(" %d:%d %s", p.Line, p.Column,
				components.Colorize(pct, ctx.Theme.Dim)), nil
		},
	}
}

// Selection shows "NL MC" (lines and characters) while a selection is
// active, highlighted. It disappears when the selection is dropped.
func Selection() segment.Segment {
	return segment.Segment{
		Name: "selection",
		Triggers: []event.Type{
			event.SelectionChanged,
		},
		Render: func(ctx segment.Context) (string, error) {
			sel := ctx.State.Selection(ctx.Scope)
			if !sel.Active {
				return "", nil
			}
			text := fmt.Sprintf("%dL %dC", sel.Lines, sel.Chars)
			if sel.Rectangle {
				text = "rect " + text
			}
			return " " + components.Colorize(text, ctx.Theme.Highlight), nil
		},
	}
}

// Search shows "current/total" match position during an interactive
// search.
func Search() segment.Segment {
	return segment.Segment{
		Name: "search",
		Triggers: []event.Type{
			event.SearchUpdated,
		},
		Render: func(ctx segment.Context) (string, error) {
			s := ctx.State.Search(ctx.Scope)
			if !s.Active {
				return "", nil
			}
			if s.Total == 0 {
				return " " + components.Colorize("0/0", ctx.Theme.StatusError), nil
			}
			return " " + components.Colorize(
				fmt.Sprintf("%d/%d", s.Current, s.Total), ctx.Theme.Accent), nil
		},
	}
}

// Clock shows wall-clock time to the minute. Volatile like Position; the
// host's redraw cadence bounds how fresh it is.
func Clock() segment.Segment {
	return segment.Segment{
		Name: "clock",
		Render: func(ctx segment.Context) (string, error) {
			return " " + ctx.State.Now().Format("15:04"), nil
		},
	}
}
