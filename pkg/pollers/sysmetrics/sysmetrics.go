// Package sysmetrics provides the "system" poller feeding the modeline's
// system-load segment. It uses gopsutil to gather CPU, memory, load, and
// uptime on both Darwin and Linux without /proc dependencies. A full
// metrics snapshot is far too slow for a render function, which is exactly
// why it lives behind a poller.
package sysmetrics

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// DefaultInterval is the polling rate when none is configured.
const DefaultInterval = 2 * time.Second

// CPUMetrics holds aggregate CPU utilisation.
type CPUMetrics struct {
	// Total is the overall CPU usage percentage (0-100).
	Total float64 `json:"total"`

	// Count is the number of logical CPUs.
	Count int `json:"count"`
}

// MemoryMetrics holds physical memory statistics.
type MemoryMetrics struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	Available   uint64  `json:"available"`
	UsedPercent float64 `json:"used_percent"`
}

// LoadMetrics holds system load averages.
type LoadMetrics struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// Metrics is the snapshot returned by Poll and read by the "system"
// segment.
type Metrics struct {
	CPU       CPUMetrics    `json:"cpu"`
	Memory    MemoryMetrics `json:"memory"`
	Load      LoadMetrics   `json:"load"`
	Uptime    time.Duration `json:"uptime"`
	Timestamp time.Time     `json:"timestamp"`
}

// subCollector is one gopsutil probe; a struct of funcs so tests can swap
// the real probes out.
type subCollector struct {
	name string
	run  func(context.Context, *Metrics) error
}

// Poller gathers system metrics via gopsutil. It satisfies the
// pkg/pollers.Poller interface (Name, Poll, Interval, Healthy).
type Poller struct {
	interval time.Duration
	subs     []subCollector

	mu      sync.Mutex
	healthy bool
}

// New creates a Poller. A non-positive interval uses DefaultInterval.
func New(interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	p := &Poller{
		interval: interval,
		healthy:  true, // healthy until proven otherwise
	}
	p.subs = []subCollector{
		{"cpu", p.pollCPU},
		{"memory", p.pollMemory},
		{"load", p.pollLoad},
		{"uptime", p.pollUptime},
	}
	return p
}

// Name returns the poller's unique identifier.
func (p *Poller) Name() string {
	return "system"
}

// Interval returns the polling interval.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Healthy reports whether the last poll succeeded.
func (p *Poller) Healthy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.healthy
}

func (p *Poller) setHealthy(h bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.healthy = h
}

// Poll gathers all metrics. Individual sub-collector failures are
// tolerated: whatever was gathered is returned with a nil error so it still
// reaches the segment and the snapshot store. Only total failure — every
// sub-collector erroring, or a cancelled context — is reported as an error.
func (p *Poller) Poll(ctx context.Context) (interface{}, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	m := Metrics{Timestamp: time.Now()}

	var errs []string
	for _, sub := range p.subs {
		if err := sub.run(ctx, &m); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", sub.name, err))
		}
	}

	if len(errs) == len(p.subs) {
		p.setHealthy(false)
		return nil, fmt.Errorf("sysmetrics: all sub-collectors failed: %s", strings.Join(errs, "; "))
	}

	// Partial failures are not fatal; the poller is still healthy as long
	// as at least one sub-collector produced data.
	p.setHealthy(true)
	return m, nil
}

// DecodeSnapshot restores a persisted Metrics value.
func (p *Poller) DecodeSnapshot(data []byte) (interface{}, error) {
	var m Metrics
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// --- sub-collectors ---

func (p *Poller) pollCPU(ctx context.Context, m *Metrics) error {
	// interval=0 means instantaneous snapshot against the last call.
	total, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return err
	}
	counts, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return err
	}
	if len(total) > 0 {
		m.CPU.Total = total[0]
	}
	m.CPU.Count = counts
	return nil
}

func (p *Poller) pollMemory(ctx context.Context, m *Metrics) error {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return err
	}
	m.Memory.Total = vm.Total
	m.Memory.Used = vm.Used
	m.Memory.Available = vm.Available
	m.Memory.UsedPercent = vm.UsedPercent
	return nil
}

func (p *Poller) pollLoad(ctx context.Context, m *Metrics) error {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return err
	}
	m.Load.Load1 = avg.Load1
	m.Load.Load5 = avg.Load5
	m.Load.Load15 = avg.Load15
	return nil
}

func (p *Poller) pollUptime(ctx context.Context, m *Metrics) error {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return err
	}
	m.Uptime = time.Duration(secs) * time.Second
	return nil
}
