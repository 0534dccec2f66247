package segments

import (
	"fmt"

	"gitlab.com/tinyland/lab/modeline/pkg/components"
	"gitlab.com/tinyland/lab/modeline/pkg/event"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/kube"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/sysmetrics"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/tailnet"
	"gitlab.com/tinyland/lab/modeline/pkg/segment"
	"gitlab.com/tinyland/lab/modeline/pkg/theme"
)

// sgLoadColor picks a status color from a 0-100 utilisation percentage.
func sgLoadColor(t theme.Theme, pct float64) string {
	switch {
	case pct >= 80:
		return t.StatusError
	case pct >= 50:
		return t.StatusWarn
	default:
		return t.StatusOK
	}
}

// System shows CPU and RAM utilisation from the "system" poller snapshot.
// Example: " C:45% M:62%"
func System() segment.Segment {
	return segment.Segment{
		Name: "system",
		Triggers: []event.Type{
			event.SystemRefreshed,
		},
		Render: func(ctx segment.Context) (string, error) {
			raw, ok := ctx.State.Snapshot("system")
			if !ok {
				return "", nil
			}
			m, ok := raw.(sysmetrics.Metrics)
			if !ok {
				return "", nil
			}
			// Color by the higher of CPU and RAM usage.
			highest := m.CPU.Total
			if m.Memory.UsedPercent > highest {
				highest = m.Memory.UsedPercent
			}
			text := fmt.Sprintf("C:%d%% M:%d%%", int(m.CPU.Total), int(m.Memory.UsedPercent))
			return " " + components.Colorize(text, sgLoadColor(ctx.Theme, highest)), nil
		},
	}
}

// Kube shows the Kubernetes context and pod health from the "kube" poller
// snapshot. Example: " ⎈ prod 12/15"
func Kube() segment.Segment {
	return segment.Segment{
		Name: "kube",
		Triggers: []event.Type{
			event.KubeRefreshed,
		},
		Render: func(ctx segment.Context) (string, error) {
			raw, ok := ctx.State.Snapshot("kube")
			if !ok {
				return "", nil
			}
			s, ok := raw.(kube.Status)
			if !ok {
				return "", nil
			}
			if !s.Connected {
				if s.Context == "" {
					return "", nil
				}
				return " " + components.Colorize("⎈ "+s.Context+" ?", ctx.Theme.Dim), nil
			}

			text := fmt.Sprintf("⎈ %s %d/%d", s.Context, s.RunningPods, s.TotalPods)
			var color string
			switch {
			case s.FailedPods > 0:
				color = ctx.Theme.StatusError
			case s.RunningPods < s.TotalPods:
				color = ctx.Theme.StatusWarn
			default:
				color = ctx.Theme.StatusOK
			}
			return " " + components.Colorize(text, color), nil
		},
	}
}

// Tailnet shows peer connectivity from the "tailnet" poller snapshot.
// Example: " ts:3/5"
func Tailnet() segment.Segment {
	return segment.Segment{
		Name: "tailnet",
		Triggers: []event.Type{
			event.TailnetRefreshed,
		},
		Render: func(ctx segment.Context) (string, error) {
			raw, ok := ctx.State.Snapshot("tailnet")
			if !ok {
				return "", nil
			}
			s, ok := raw.(tailnet.Status)
			if !ok {
				return "", nil
			}
			if !s.BackendUp {
				return " " + components.Colorize("ts:down", ctx.Theme.StatusError), nil
			}

			text := fmt.Sprintf("ts:%d/%d", s.OnlinePeers, s.TotalPeers)
			var color string
			switch {
			case s.TotalPeers == 0:
				color = ctx.Theme.Dim
			case s.OnlinePeers == s.TotalPeers:
				color = ctx.Theme.StatusOK
			case s.OnlinePeers*2 >= s.TotalPeers:
				color = ctx.Theme.StatusWarn
			default:
				color = ctx.Theme.StatusError
			}
			return " " + components.Colorize(text, color), nil
		},
	}
}
