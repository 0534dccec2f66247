package pollers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gitlab.com/tinyland/lab/modeline/pkg/cache"
)

// Runner orchestrates registered pollers: one goroutine per poller, each on
// its own ticker, fanning snapshots into a single Updates channel the host
// drains on its UI goroutine. When a disk store is attached, snapshots are
// persisted after every successful poll and replayed on Start, so a fresh
// process shows last-known infra state before the first real poll lands.
type Runner struct {
	registry *Registry
	store    *cache.Store // optional warm-start persistence
	updates  chan Update
	log      *slog.Logger

	wg sync.WaitGroup
}

// NewRunner creates a runner. store may be nil to disable persistence;
// logger may be nil for silence.
func NewRunner(registry *Registry, store *cache.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		registry: registry,
		store:    store,
		updates:  make(chan Update, 16),
		log:      logger,
	}
}

// Updates returns the channel snapshots arrive on. The channel closes after
// Start's context is cancelled and all poller goroutines have drained.
func (r *Runner) Updates() <-chan Update {
	return r.updates
}

// Start replays persisted snapshots, then launches one goroutine per
// registered poller. Each poller runs immediately and then on its interval
// until ctx is cancelled. Start does not block.
func (r *Runner) Start(ctx context.Context) {
	r.replay()

	for _, name := range r.registry.List() {
		p, ok := r.registry.Get(name)
		if !ok {
			continue
		}
		r.wg.Add(1)
		go r.run(ctx, p)
	}

	go func() {
		r.wg.Wait()
		close(r.updates)
	}()
}

// run is the per-poller loop.
func (r *Runner) run(ctx context.Context, p Poller) {
	defer r.wg.Done()

	interval := p.Interval()
	if interval <= 0 {
		interval = time.Minute
	}

	r.poll(ctx, p)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.poll(ctx, p)
		}
	}
}

// poll runs one cycle, updates status, persists, and forwards the update.
func (r *Runner) poll(ctx context.Context, p Poller) {
	name := p.Name()
	started := time.Now()

	data, err := p.Poll(ctx)

	r.registry.updateStatus(name, func(s *Status) {
		s.LastRun = started
		s.RunCount++
		s.LastError = err
		s.Healthy = err == nil
		if err != nil {
			s.ErrorCount++
		}
	})

	if err != nil {
		r.log.Warn("poll failed", "poller", name, "err", err)
	} else if r.store != nil {
		if perr := cache.PutTyped(r.store, name, data); perr != nil {
			r.log.Warn("persist snapshot", "poller", name, "err", perr)
		}
	}

	update := Update{
		Source:    name,
		Data:      data,
		Err:       err,
		Refresh:   RefreshEvent(name),
		Timestamp: started,
	}

	select {
	case r.updates <- update:
	case <-ctx.Done():
	}
}

// replay pushes persisted snapshots for all registered pollers into the
// updates channel so segments have data before the first live poll.
func (r *Runner) replay() {
	if r.store == nil {
		return
	}
	for _, name := range r.registry.List() {
		raw, ok := r.store.Get(name)
		if !ok {
			continue
		}
		p, _ := r.registry.Get(name)
		data, err := decodeSnapshot(name, raw, p)
		if err != nil || data == nil {
			continue
		}
		select {
		case r.updates <- Update{
			Source:    name,
			Data:      data,
			Refresh:   RefreshEvent(name),
			Timestamp: time.Now(),
		}:
		default:
		}
	}
}
