package segments

import (
	"gitlab.com/tinyland/lab/modeline/pkg/components"
	"gitlab.com/tinyland/lab/modeline/pkg/event"
	"gitlab.com/tinyland/lab/modeline/pkg/segment"
)

// BufferID shows the buffer's display name, accented on the focused
// surface. Remote files get an "@" prefix, narrowed buffers a trailing
// marker.
func BufferID() segment.Segment {
	return segment.Segment{
		Name: "buffer-id",
		Triggers: []event.Type{
			event.FileOpened,
			event.BufferRenamed,
		},
		Styled: true,
		Render: func(ctx segment.Context) (string, error) {
			b, ok := ctx.State.Buffer(ctx.Scope.Buffer)
			if !ok {
				return "", nil
			}
			name := b.Name
			if name == "" {
				name = string(b.ID)
			}
			if b.Remote {
				name = "@" + name
			}
			if b.Narrowed {
				name += "~"
			}
			if ctx.Active {
				name = components.Bold(components.Colorize(name, ctx.Theme.Accent))
			}
			return " " + name, nil
		},
	}
}

// BufferState shows the modified/read-only markers: "●" while the buffer
// has unsaved changes, "%" when it is read-only.
func BufferState() segment.Segment {
	return segment.Segment{
		Name: "buffer-state",
		Triggers: []event.Type{
			event.FileOpened,
			event.FileSaved,
			event.BufferModified,
		},
		Render: func(ctx segment.Context) (string, error) {
			b, ok := ctx.State.Buffer(ctx.Scope.Buffer)
			if !ok {
				return "", nil
			}
			switch {
			case b.ReadOnly:
				return " " + components.Colorize("%", ctx.Theme.Dim), nil
			case b.Modified:
				return " " + components.Colorize("●", ctx.Theme.StatusWarn), nil
			default:
				return "", nil
			}
		},
	}
}

// Mode shows the buffer's major mode / language name.
func Mode() segment.Segment {
	return segment.Segment{
		Name: "mode",
		Triggers: []event.Type{
			event.FileOpened,
			event.ModeChanged,
		},
		Render: func(ctx segment.Context) (string, error) {
			b, ok := ctx.State.Buffer(ctx.Scope.Buffer)
			if !ok || b.Mode == "" {
				return "", nil
			}
			return " " + b.Mode, nil
		},
	}
}

// Encoding shows the coding system and end-of-line convention, dimmed. The
// ubiquitous default "utf-8 LF" is elided to keep the line quiet; anything
// unusual is worth showing.
func Encoding() segment.Segment {
	return segment.Segment{
		Name: "encoding",
		Triggers: []event.Type{
			event.FileOpened,
			event.EncodingChanged,
		},
		Render: func(ctx segment.Context) (string, error) {
			b, ok := ctx.State.Buffer(ctx.Scope.Buffer)
			if !ok {
				return "", nil
			}
			enc, eol := b.Encoding, b.EOL
			if enc == "" && eol == "" {
				return "", nil
			}
			if (enc == "utf-8" || enc == "") && (eol == "LF" || eol == "") {
				return "", nil
			}
			if enc == "" {
				enc = "utf-8"
			}
			if eol == "" {
				eol = "LF"
			}
			return " " + components.Colorize(enc+" "+eol, ctx.Theme.Dim), nil
		},
	}
}
