// Package pollers defines the interfaces, registry, and runner for modeline
// background data sources. Segment render functions must never block, so
// anything expensive — git queries, Kubernetes API calls, the tailscaled
// socket, system metrics — runs here, off the redraw path. Each poller's
// snapshot is handed to the host, which installs it into editor state and
// emits the matching refresh event; the segment cache then recomputes
// lazily on the next redraw.
package pollers

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/modeline/pkg/event"
)

// Poller is the interface all background data sources implement.
// Implementations live in sub-packages (e.g. pkg/pollers/sysmetrics) and
// are registered with the Registry at startup.
type Poller interface {
	// Name returns a unique identifier for this poller (e.g. "system").
	// It doubles as the snapshot key segments read via StateReader.
	Name() string

	// Poll performs one collection cycle and returns the snapshot. The
	// returned value is opaque here; segments type-assert it.
	Poll(ctx context.Context) (interface{}, error)

	// Interval returns how often this poller should run.
	Interval() time.Duration

	// Healthy returns whether the poller is functioning. A poller that
	// has never run or whose last run succeeded is considered healthy.
	Healthy() bool
}

// Status tracks the runtime state of a single poller. The runner updates
// this after every cycle.
type Status struct {
	Name       string
	Healthy    bool
	LastRun    time.Time
	LastError  error
	RunCount   int64
	ErrorCount int64
}

// Update carries one snapshot from a poller goroutine to the host's UI
// goroutine. The host installs Data into editor state and emits Refresh.
type Update struct {
	Source    string
	Data      interface{}
	Err       error
	Refresh   event.Type
	Timestamp time.Time
}

// Snapshotter is implemented by pollers whose snapshots survive disk
// persistence. DecodeSnapshot turns the stored bytes back into the same
// concrete type Poll returns, so segments can type-assert replayed data.
type Snapshotter interface {
	DecodeSnapshot(data []byte) (interface{}, error)
}

// decodeSnapshot decodes persisted bytes via the poller's Snapshotter
// implementation, or reports nil for pollers that do not persist.
func decodeSnapshot(name string, raw []byte, p Poller) (interface{}, error) {
	s, ok := p.(Snapshotter)
	if !ok {
		return nil, nil
	}
	v, err := s.DecodeSnapshot(raw)
	if err != nil {
		return nil, fmt.Errorf("pollers: decode %s snapshot: %w", name, err)
	}
	return v, nil
}

// RefreshEvent maps a poller name to the event type its snapshots emit.
// Unrecognized pollers get a derived "<name>-refreshed" event, which custom
// segments may declare as a trigger.
func RefreshEvent(name string) event.Type {
	switch name {
	case "system":
		return event.SystemRefreshed
	case "kube":
		return event.KubeRefreshed
	case "tailnet":
		return event.TailnetRefreshed
	case "vcs":
		return event.VCSRefreshed
	default:
		return event.Type(name + "-refreshed")
	}
}
