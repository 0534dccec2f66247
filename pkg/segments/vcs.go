package segments

import (
	"fmt"

	"gitlab.com/tinyland/lab/modeline/pkg/components"
	"gitlab.com/tinyland/lab/modeline/pkg/editor"
	"gitlab.com/tinyland/lab/modeline/pkg/event"
	"gitlab.com/tinyland/lab/modeline/pkg/segment"
	"gitlab.com/tinyland/lab/modeline/pkg/theme"
)

// VC shows the version-control branch, colored by working-tree state. It
// only recomputes on vcs-refreshed — never on keystrokes — so the cost of
// the underlying git query is paid by the vcs poller, not the redraw.
func VC() segment.Segment {
	return segment.Segment{
		Name: "vc",
		Triggers: []event.Type{
			event.FileOpened,
			event.VCSRefreshed,
		},
		Render: func(ctx segment.Context) (string, error) {
			info, ok := ctx.State.VCS(ctx.Scope.Buffer)
			if !ok || info.Branch == "" {
				return "", nil
			}
			text := "⎇ " + info.Branch
			if info.State == editor.VCSConflict {
				text += "!"
			}
			return " " + components.Colorize(text,
				theme.VCColor(ctx.Theme, string(info.State))), nil
		},
	}
}

// Checker summarizes syntax-checker results: error and warning counts when
// present, a check mark when clean, an ellipsis while a check runs.
func Checker() segment.Segment {
	return segment.Segment{
		Name: "checker",
		Triggers: []event.Type{
			event.FileOpened,
			event.CheckerFinished,
		},
		Render: func(ctx segment.Context) (string, error) {
			c, ok := ctx.State.Checker(ctx.Scope.Buffer)
			if !ok {
				return "", nil
			}
			if c.Running {
				return " " + components.Colorize("…", ctx.Theme.Dim), nil
			}
			if c.Errors == 0 && c.Warnings == 0 {
				return " " + components.Colorize("✓", ctx.Theme.StatusOK), nil
			}
			out := " "
			if c.Errors > 0 {
				out += components.Colorize(fmt.Sprintf("✗%d", c.Errors), ctx.Theme.StatusError)
			}
			if c.Warnings > 0 {
				if c.Errors > 0 {
					out += " "
				}
				out += components.Colorize(fmt.Sprintf("▲%d", c.Warnings), ctx.Theme.StatusWarn)
			}
			return out, nil
		},
	}
}
