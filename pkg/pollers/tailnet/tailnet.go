// Package tailnet provides the "tailnet" poller feeding the modeline's
// Tailscale segment. It talks to the local tailscaled daemon via the
// LocalAPI unix socket and reduces the ipnstate.Status response to the peer
// counts a one-line status display needs.
package tailnet

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"tailscale.com/ipn/ipnstate"
)

// DefaultInterval is the polling rate when none is configured.
const DefaultInterval = 30 * time.Second

// StatusClient abstracts the local Tailscale daemon API for testability.
// The real implementation is tailscale.com/client/local.Client, whose
// Status method satisfies this interface.
type StatusClient interface {
	Status(ctx context.Context) (*ipnstate.Status, error)
}

// Config holds the configuration for the tailnet poller.
type Config struct {
	// Interval is how often polling runs. Non-positive uses DefaultInterval.
	Interval time.Duration

	// SocketPath is an optional custom tailscaled socket path. When empty,
	// the platform default is used.
	SocketPath string
}

// Status is the snapshot returned by Poll and read by the "tailnet"
// segment.
type Status struct {
	Self        string    `json:"self"`         // this node's hostname
	TailnetName string    `json:"tailnet_name"` // e.g. "example.ts.net"
	BackendUp   bool      `json:"backend_up"`   // daemon state is Running
	OnlinePeers int       `json:"online_peers"`
	TotalPeers  int       `json:"total_peers"`
	ExitNode    string    `json:"exit_node,omitempty"` // hostname of active exit node
	Timestamp   time.Time `json:"timestamp"`
}

// Poller gathers tailnet status from the local daemon. It satisfies the
// pkg/pollers.Poller interface.
type Poller struct {
	client   StatusClient
	interval time.Duration

	mu      sync.Mutex
	healthy bool
}

// New creates a tailnet Poller. The caller must provide a StatusClient; in
// production this is a *local.Client configured with the optional
// SocketPath (see NewLocalClient).
func New(cfg Config, client StatusClient) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		client:   client,
		interval: interval,
		healthy:  true, // healthy until first failure
	}
}

// Name returns the poller identifier.
func (p *Poller) Name() string {
	return "tailnet"
}

// Interval returns how often this poller should run.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Healthy returns whether the last poll succeeded.
func (p *Poller) Healthy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.healthy
}

func (p *Poller) setHealthy(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.healthy = v
}

// Poll calls the local Tailscale daemon and returns a Status snapshot.
func (p *Poller) Poll(ctx context.Context) (interface{}, error) {
	st, err := p.client.Status(ctx)
	if err != nil {
		p.setHealthy(false)
		return nil, fmt.Errorf("tailnet status: %w", err)
	}
	if st == nil {
		p.setHealthy(false)
		return nil, fmt.Errorf("tailnet status: nil response")
	}

	status := mapStatus(st)
	p.setHealthy(true)
	return status, nil
}

// DecodeSnapshot restores a persisted Status value.
func (p *Poller) DecodeSnapshot(data []byte) (interface{}, error) {
	var s Status
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// mapStatus converts the ipnstate.Status into the simplified Status.
func mapStatus(st *ipnstate.Status) Status {
	out := Status{
		BackendUp: st.BackendState == "Running",
		Timestamp: time.Now(),
	}

	if st.Self != nil {
		out.Self = st.Self.HostName
	}
	if st.CurrentTailnet != nil {
		out.TailnetName = st.CurrentTailnet.Name
	}

	// st.Peers() yields sorted keys for deterministic iteration.
	for _, pubKey := range st.Peers() {
		ps := st.Peer[pubKey]
		if ps == nil {
			continue
		}
		out.TotalPeers++
		if ps.Online {
			out.OnlinePeers++
		}
		if ps.ExitNode {
			out.ExitNode = ps.HostName
		}
	}

	return out
}
