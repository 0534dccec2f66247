// Package vcs provides the "vcs" poller feeding the modeline's
// version-control segment. It shells out to git off the redraw path —
// running git inside a render function would stall the interactive session
// on slow filesystems — and reduces the result to branch name and
// working-tree state.
package vcs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DefaultInterval is the polling rate when none is configured.
const DefaultInterval = 10 * time.Second

// Config holds the configuration for the vcs poller.
type Config struct {
	// Interval is how often polling runs. Non-positive uses DefaultInterval.
	Interval time.Duration

	// Dir is the working directory whose repository is inspected.
	Dir string
}

// Snapshot is the result of one git inspection, read by the "vc" segment
// via the host's VCS state. State values match editor.VCSState strings.
type Snapshot struct {
	Backend   string    `json:"backend"` // "Git"
	Branch    string    `json:"branch"`
	State     string    `json:"state"` // "clean", "edited", "conflict"
	Ahead     int       `json:"ahead"`
	Behind    int       `json:"behind"`
	Timestamp time.Time `json:"timestamp"`
}

// runner executes a git subcommand; a function type so tests can stub the
// git binary away.
type runner func(ctx context.Context, dir string, args ...string) (string, error)

// gitRun is the real runner.
func gitRun(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = nil
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

// Poller inspects one git repository. It satisfies the pkg/pollers.Poller
// interface.
type Poller struct {
	cfg Config
	run runner

	mu      sync.Mutex
	healthy bool
}

// New creates a vcs Poller for cfg.Dir.
func New(cfg Config) *Poller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultInterval
	}
	return &Poller{
		cfg:     cfg,
		run:     gitRun,
		healthy: true,
	}
}

// Name returns the poller identifier.
func (p *Poller) Name() string { return "vcs" }

// Interval returns how often this poller should run.
func (p *Poller) Interval() time.Duration { return p.cfg.Interval }

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

// Poll inspects the repository. A directory outside any repository is an
// error; the runner keeps the previous snapshot in that case, so the
// segment retains its last good value.
func (p *Poller) Poll(ctx context.Context) (interface{}, error) {
	branch, err := p.run(ctx, p.cfg.Dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		p.setHealthy(false)
		return nil, fmt.Errorf("vcs: resolve branch in %s: %w", p.cfg.Dir, err)
	}

	snap := Snapshot{
		Backend:   "Git",
		Branch:    branch,
		State:     "clean",
		Timestamp: time.Now(),
	}

	porcelain, err := p.run(ctx, p.cfg.Dir, "status", "--porcelain")
	if err != nil {
		p.setHealthy(false)
		return nil, fmt.Errorf("vcs: status in %s: %w", p.cfg.Dir, err)
	}
	snap.State = classify(porcelain)

	// Ahead/behind counts are best-effort: branches without an upstream
	// simply report zero.
	if counts, err := p.run(ctx, p.cfg.Dir, "rev-list", "--left-right", "--count", "@{upstream}...HEAD"); err == nil {
		fmt.Sscanf(counts, "%d\t%d", &snap.Behind, &snap.Ahead)
	}

	p.setHealthy(true)
	return snap, nil
}

// DecodeSnapshot restores a persisted Snapshot value.
func (p *Poller) DecodeSnapshot(data []byte) (interface{}, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}

// classify reduces `git status --porcelain` output to a working-tree state.
func classify(porcelain string) string {
	if porcelain == "" {
		return "clean"
	}
	for _, line := range strings.Split(porcelain, "\n") {
		if len(line) < 2 {
			continue
		}
		// Unmerged entries mark both status columns: UU, AA, DD, etc.
		xy := line[:2]
		switch xy {
		case "UU", "AA", "DD", "AU", "UA", "DU", "UD":
			return "conflict"
		}
	}
	return "edited"
}
