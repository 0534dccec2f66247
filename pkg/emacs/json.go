// Package emacs provides output formats suitable for Emacs consumption:
// JSON rendering of the infrastructure segments, propertized text, and an
// Elisp package generator for mode-line integration.
//
// The exporters read persisted poller snapshots rather than polling live,
// so a `modeline -emacs` call returns in microseconds — the cost of the
// underlying queries is paid by whichever process runs the pollers.
package emacs

import (
	"encoding/json"
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/modeline/pkg/cache"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/kube"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/sysmetrics"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/tailnet"
	"gitlab.com/tinyland/lab/modeline/pkg/pollers/vcs"
)

// Version is the emacs integration protocol version.
const Version = "1.0.0"

// JSONOutput represents the exported segment state for Elisp parsing.
type JSONOutput struct {
	Version   string        `json:"version"`
	Timestamp string        `json:"timestamp"`
	Segments  []SegmentJSON `json:"segments"`
}

// SegmentJSON is one modeline segment in JSON form.
type SegmentJSON struct {
	Name   string `json:"name"`
	Text   string `json:"text"`
	Status string `json:"status"` // "ok", "warning", "error", "unknown"
}

// RenderJSON assembles all available segment data from persisted poller
// snapshots into a single JSONOutput structure.
func RenderJSON(cacheDir string) ([]byte, error) {
	store, err := emOpenStore(cacheDir)
	if err != nil {
		return nil, fmt.Errorf("emacs json: open cache: %w", err)
	}

	output := JSONOutput{
		Version:   Version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Segments:  emExtractAll(store),
	}

	data, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("emacs json: marshal: %w", err)
	}
	return data, nil
}

// emOpenStore opens the snapshot store read-side for exporters.
func emOpenStore(cacheDir string) (*cache.Store, error) {
	return cache.NewStore(cache.StoreConfig{Dir: cacheDir})
}

// emExtractAll runs every extractor and collects the segments that have
// snapshot data behind them.
func emExtractAll(store *cache.Store) []SegmentJSON {
	var segs []SegmentJSON
	for _, extract := range []func(*cache.Store) *SegmentJSON{
		emExtractVCS,
		emExtractSystem,
		emExtractKube,
		emExtractTailnet,
	} {
		if s := extract(store); s != nil {
			segs = append(segs, *s)
		}
	}
	return segs
}

func emExtractVCS(store *cache.Store) *SegmentJSON {
	snap, ok := cache.GetTyped[vcs.Snapshot](store, "vcs")
	if !ok || snap.Branch == "" {
		return nil
	}
	text := "⎇ " + snap.Branch
	status := "ok"
	switch snap.State {
	case "conflict":
		text += "!"
		status = "error"
	case "edited":
		status = "warning"
	}
	return &SegmentJSON{Name: "vc", Text: text, Status: status}
}

func emExtractSystem(store *cache.Store) *SegmentJSON {
	m, ok := cache.GetTyped[sysmetrics.Metrics](store, "system")
	if !ok {
		return nil
	}
	highest := m.CPU.Total
	if m.Memory.UsedPercent > highest {
		highest = m.Memory.UsedPercent
	}
	status := "ok"
	switch {
	case highest >= 80:
		status = "error"
	case highest >= 50:
		status = "warning"
	}
	return &SegmentJSON{
		Name:   "system",
		Text:   fmt.Sprintf("C:%d%% M:%d%%", int(m.CPU.Total), int(m.Memory.UsedPercent)),
		Status: status,
	}
}

func emExtractKube(store *cache.Store) *SegmentJSON {
	s, ok := cache.GetTyped[kube.Status](store, "kube")
	if !ok || s.Context == "" {
		return nil
	}
	if !s.Connected {
		return &SegmentJSON{Name: "kube", Text: "⎈ " + s.Context + " ?", Status: "unknown"}
	}
	status := "ok"
	switch {
	case s.FailedPods > 0:
		status = "error"
	case s.RunningPods < s.TotalPods:
		status = "warning"
	}
	return &SegmentJSON{
		Name:   "kube",
		Text:   fmt.Sprintf("⎈ %s %d/%d", s.Context, s.RunningPods, s.TotalPods),
		Status: status,
	}
}

func emExtractTailnet(store *cache.Store) *SegmentJSON {
	s, ok := cache.GetTyped[tailnet.Status](store, "tailnet")
	if !ok {
		return nil
	}
	if !s.BackendUp {
		return &SegmentJSON{Name: "tailnet", Text: "ts:down", Status: "error"}
	}
	status := "ok"
	switch {
	case s.TotalPeers == 0:
		status = "unknown"
	case s.OnlinePeers < s.TotalPeers:
		status = "warning"
	}
	return &SegmentJSON{
		Name:   "tailnet",
		Text:   fmt.Sprintf("ts:%d/%d", s.OnlinePeers, s.TotalPeers),
		Status: status,
	}
}
