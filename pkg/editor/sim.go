package editor

import (
	"sync"
	"time"

	"gitlab.com/tinyland/lab/modeline/pkg/event"
)

// Sim is an in-memory editor host implementing StateReader. Tests and the
// demo mutate it through setters; each setter emits the matching
// invalidation event when a bus is attached, so the engine sees the same
// event flow a real host would produce.
type Sim struct {
	mu         sync.RWMutex
	bus        *event.Bus
	buffers    map[BufferID]BufferInfo
	positions  map[Scope]Position
	selections map[Scope]Selection
	vcs        map[BufferID]VCSInfo
	checkers   map[BufferID]CheckerInfo
	searches   map[Scope]SearchInfo
	snapshots  map[string]interface{}
	now        time.Time
}

// NewSim returns an empty simulated host. A nil bus is allowed; setters
// then mutate state without emitting events.
func NewSim(bus *event.Bus) *Sim {
	return &Sim{
		bus:        bus,
		buffers:    make(map[BufferID]BufferInfo),
		positions:  make(map[Scope]Position),
		selections: make(map[Scope]Selection),
		vcs:        make(map[BufferID]VCSInfo),
		checkers:   make(map[BufferID]CheckerInfo),
		searches:   make(map[Scope]SearchInfo),
		snapshots:  make(map[string]interface{}),
		now:        time.Now(),
	}
}

// --- StateReader ---

// Buffer implements StateReader.
func (s *Sim) Buffer(id BufferID) (BufferInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.buffers[id]
	return b, ok
}

// Position implements StateReader.
func (s *Sim) Position(sc Scope) Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positions[sc]
}

// Selection implements StateReader.
func (s *Sim) Selection(sc Scope) Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selections[sc]
}

// VCS implements StateReader.
func (s *Sim) VCS(id BufferID) (VCSInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vcs[id]
	return v, ok
}

// Checker implements StateReader.
func (s *Sim) Checker(id BufferID) (CheckerInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.checkers[id]
	return c, ok
}

// Search implements StateReader.
func (s *Sim) Search(sc Scope) SearchInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searches[sc]
}

// Snapshot implements StateReader.
func (s *Sim) Snapshot(poller string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.snapshots[poller]
	return v, ok
}

// Now implements StateReader, returning the simulated clock.
func (s *Sim) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

// --- Mutators ---

// OpenBuffer installs buffer metadata and emits file-opened.
func (s *Sim) OpenBuffer(info BufferInfo) {
	s.mu.Lock()
	s.buffers[info.ID] = info
	s.mu.Unlock()
	s.emit(event.ForBuffer(event.FileOpened, string(info.ID)))
}

// KillBuffer removes a buffer and all per-scope state referencing it, then
// emits buffer-killed. This is the scope-teardown path: the engine drops
// every cache entry for the buffer on this event.
func (s *Sim) KillBuffer(id BufferID) {
	s.mu.Lock()
	delete(s.buffers, id)
	delete(s.vcs, id)
	delete(s.checkers, id)
	for sc := range s.positions {
		if sc.Buffer == id {
			delete(s.positions, sc)
		}
	}
	for sc := range s.selections {
		if sc.Buffer == id {
			delete(s.selections, sc)
		}
	}
	for sc := range s.searches {
		if sc.Buffer == id {
			delete(s.searches, sc)
		}
	}
	s.mu.Unlock()
	s.emit(event.ForBuffer(event.BufferKilled, string(id)))
}

// SetModified flips a buffer's modified flag and emits buffer-modified
// (or file-saved when the flag clears).
func (s *Sim) SetModified(id BufferID, modified bool) {
	s.mu.Lock()
	b, ok := s.buffers[id]
	if ok {
		b.Modified = modified
		s.buffers[id] = b
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	if modified {
		s.emit(event.ForBuffer(event.BufferModified, string(id)))
	} else {
		s.emit(event.ForBuffer(event.FileSaved, string(id)))
	}
}

// RenameBuffer changes a buffer's display name and emits buffer-renamed.
func (s *Sim) RenameBuffer(id BufferID, name string) {
	s.mu.Lock()
	if b, ok := s.buffers[id]; ok {
		b.Name = name
		s.buffers[id] = b
	}
	s.mu.Unlock()
	s.emit(event.ForBuffer(event.BufferRenamed, string(id)))
}

// SetMode changes a buffer's major mode and emits mode-changed.
func (s *Sim) SetMode(id BufferID, mode string) {
	s.mu.Lock()
	if b, ok := s.buffers[id]; ok {
		b.Mode = mode
		s.buffers[id] = b
	}
	s.mu.Unlock()
	s.emit(event.ForBuffer(event.ModeChanged, string(id)))
}

// SetEncoding changes a buffer's coding system and emits encoding-changed.
func (s *Sim) SetEncoding(id BufferID, encoding, eol string) {
	s.mu.Lock()
	if b, ok := s.buffers[id]; ok {
		b.Encoding = encoding
		b.EOL = eol
		s.buffers[id] = b
	}
	s.mu.Unlock()
	s.emit(event.ForBuffer(event.EncodingChanged, string(id)))
}

// SetPosition records the cursor position for a scope. No event: position
// display is a volatile segment, refreshed on every redraw of the focused
// surface.
func (s *Sim) SetPosition(sc Scope, p Position) {
	s.mu.Lock()
	s.positions[sc] = p
	s.mu.Unlock()
}

// SetSelection records selection state for a scope and emits
// selection-changed.
func (s *Sim) SetSelection(sc Scope, sel Selection) {
	s.mu.Lock()
	s.selections[sc] = sel
	s.mu.Unlock()
	ev := event.New(event.SelectionChanged)
	ev.SurfaceID = string(sc.Surface)
	ev.BufferID = string(sc.Buffer)
	s.emit(ev)
}

// SetVCS records version-control status for a buffer and emits
// vcs-refreshed.
func (s *Sim) SetVCS(id BufferID, info VCSInfo) {
	s.mu.Lock()
	s.vcs[id] = info
	s.mu.Unlock()
	s.emit(event.ForBuffer(event.VCSRefreshed, string(id)))
}

// SetChecker records syntax-checker results for a buffer and emits
// checker-finished.
func (s *Sim) SetChecker(id BufferID, info CheckerInfo) {
	s.mu.Lock()
	s.checkers[id] = info
	s.mu.Unlock()
	s.emit(event.ForBuffer(event.CheckerFinished, string(id)))
}

// SetSearch records interactive-search state for a scope and emits
// search-updated.
func (s *Sim) SetSearch(sc Scope, info SearchInfo) {
	s.mu.Lock()
	s.searches[sc] = info
	s.mu.Unlock()
	ev := event.New(event.SearchUpdated)
	ev.SurfaceID = string(sc.Surface)
	ev.BufferID = string(sc.Buffer)
	s.emit(ev)
}

// PublishSnapshot stores a poller result and emits the given event type
// (e.g. system-refreshed). The pollers.Runner calls this from the host
// goroutine after a poll completes.
func (s *Sim) PublishSnapshot(poller string, data interface{}, t event.Type) {
	s.mu.Lock()
	s.snapshots[poller] = data
	s.mu.Unlock()
	s.emit(event.New(t))
}

// SetNow sets the simulated clock.
func (s *Sim) SetNow(t time.Time) {
	s.mu.Lock()
	s.now = t
	s.mu.Unlock()
}

// AdvanceTime moves the simulated clock forward.
func (s *Sim) AdvanceTime(d time.Duration) {
	s.mu.Lock()
	s.now = s.now.Add(d)
	s.mu.Unlock()
}

func (s *Sim) emit(ev event.Event) {
	if s.bus != nil {
		s.bus.Emit(ev)
	}
}

var _ StateReader = (*Sim)(nil)
