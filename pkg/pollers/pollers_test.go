package pollers

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/modeline/pkg/cache"
	"gitlab.com/tinyland/lab/modeline/pkg/event"
)

type plSnap struct {
	Value int `json:"value"`
}

// plFake is a scriptable poller for runner tests.
type plFake struct {
	name     string
	interval time.Duration
	data     interface{}
	err      error

	mu    sync.Mutex
	calls int
}

func (f *plFake) Name() string            { return f.name }
func (f *plFake) Interval() time.Duration { return f.interval }
func (f *plFake) Healthy() bool           { return f.err == nil }

func (f *plFake) Poll(ctx context.Context) (interface{}, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.data, f.err
}

func (f *plFake) DecodeSnapshot(data []byte) (interface{}, error) {
	var s plSnap
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func plRecv(t *testing.T, ch <-chan Update) Update {
	t.Helper()
	select {
	case u, ok := <-ch:
		if !ok {
			t.Fatal("updates channel closed early")
		}
		return u
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for update")
	}
	panic("unreachable")
}

// --- Registry ---

func TestRegisterDuplicateFails(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&plFake{name: "system"}); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if err := r.Register(&plFake{name: "system"}); err == nil {
		t.Error("duplicate Register succeeded")
	}
}

func TestListSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"vcs", "kube", "system"} {
		r.Register(&plFake{name: name})
	}
	got := r.List()
	want := []string{"kube", "system", "vcs"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List = %v, want %v", got, want)
		}
	}
}

func TestUnregister(t *testing.T) {
	r := NewRegistry()
	r.Register(&plFake{name: "vcs"})
	r.Unregister("vcs")
	if _, ok := r.Get("vcs"); ok {
		t.Error("poller still resolvable after Unregister")
	}
	if _, ok := r.PollerStatus("vcs"); ok {
		t.Error("status survives Unregister")
	}
	r.Unregister("vcs") // no-op
}

func TestPollerStatusMissing(t *testing.T) {
	r := NewRegistry()
	if _, ok := r.PollerStatus("nope"); ok {
		t.Error("status for unregistered poller")
	}
}

// --- RefreshEvent ---

func TestRefreshEventMapping(t *testing.T) {
	cases := map[string]event.Type{
		"system":  event.SystemRefreshed,
		"kube":    event.KubeRefreshed,
		"tailnet": event.TailnetRefreshed,
		"vcs":     event.VCSRefreshed,
		"weather": event.Type("weather-refreshed"),
	}
	for name, want := range cases {
		if got := RefreshEvent(name); got != want {
			t.Errorf("RefreshEvent(%q) = %q, want %q", name, got, want)
		}
	}
}

// --- Runner ---

func TestRunnerDeliversFirstPoll(t *testing.T) {
	r := NewRegistry()
	r.Register(&plFake{name: "system", interval: time.Hour, data: plSnap{Value: 7}})

	ctx, cancel := context.WithCancel(context.Background())
	runner := NewRunner(r, nil, nil)
	runner.Start(ctx)

	u := plRecv(t, runner.Updates())
	if u.Source != "system" || u.Err != nil {
		t.Errorf("update = %+v", u)
	}
	if u.Refresh != event.SystemRefreshed {
		t.Errorf("Refresh = %q", u.Refresh)
	}
	if u.Data.(plSnap).Value != 7 {
		t.Errorf("Data = %v", u.Data)
	}

	cancel()
	for range runner.Updates() {
	}
}

func TestRunnerUpdatesStatus(t *testing.T) {
	r := NewRegistry()
	r.Register(&plFake{name: "vcs", interval: time.Hour, err: errors.New("no repo")})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := NewRunner(r, nil, nil)
	runner.Start(ctx)

	u := plRecv(t, runner.Updates())
	if u.Err == nil {
		t.Fatal("error not forwarded in update")
	}

	st, ok := r.PollerStatus("vcs")
	if !ok {
		t.Fatal("status missing")
	}
	if st.Healthy || st.ErrorCount != 1 || st.RunCount != 1 {
		t.Errorf("status = %+v", st)
	}
	if st.LastRun.IsZero() {
		t.Error("LastRun not recorded")
	}
}

func TestRunnerPersistsSnapshot(t *testing.T) {
	store, err := cache.NewStore(cache.StoreConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	r.Register(&plFake{name: "system", interval: time.Hour, data: plSnap{Value: 42}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := NewRunner(r, store, nil)
	runner.Start(ctx)
	plRecv(t, runner.Updates())

	snap, ok := cache.GetTyped[plSnap](store, "system")
	if !ok {
		t.Fatal("snapshot not persisted")
	}
	if snap.Value != 42 {
		t.Errorf("persisted = %+v", snap)
	}
}

func TestRunnerFailedPollNotPersisted(t *testing.T) {
	store, err := cache.NewStore(cache.StoreConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	r.Register(&plFake{name: "vcs", interval: time.Hour, err: errors.New("boom")})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := NewRunner(r, store, nil)
	runner.Start(ctx)
	plRecv(t, runner.Updates())

	if store.Has("vcs") {
		t.Error("failed poll persisted a snapshot")
	}
}

func TestRunnerReplaysPersistedSnapshot(t *testing.T) {
	store, err := cache.NewStore(cache.StoreConfig{Dir: t.TempDir()})
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.PutTyped(store, "system", plSnap{Value: 99}); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	r.Register(&plFake{name: "system", interval: time.Hour, data: plSnap{Value: 1}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := NewRunner(r, store, nil)
	runner.Start(ctx)

	// The replayed snapshot arrives before the first live poll's result.
	first := plRecv(t, runner.Updates())
	if first.Source != "system" {
		t.Fatalf("first update source = %q", first.Source)
	}
	if got := first.Data.(plSnap).Value; got != 99 {
		t.Errorf("replayed value = %d, want 99", got)
	}

	second := plRecv(t, runner.Updates())
	if got := second.Data.(plSnap).Value; got != 1 {
		t.Errorf("live value = %d, want 1", got)
	}
}

func TestRunnerChannelClosesAfterCancel(t *testing.T) {
	r := NewRegistry()
	r.Register(&plFake{name: "system", interval: time.Hour, data: plSnap{}})

	ctx, cancel := context.WithCancel(context.Background())
	runner := NewRunner(r, nil, nil)
	runner.Start(ctx)
	plRecv(t, runner.Updates())
	cancel()

	select {
	case _, ok := <-drainUntilClosed(runner.Updates()):
		if ok {
			t.Error("channel did not close")
		}
	case <-time.After(5 * time.Second):
		t.Error("timed out waiting for channel close")
	}
}

// drainUntilClosed consumes updates and signals when the source closes.
func drainUntilClosed(ch <-chan Update) <-chan Update {
	done := make(chan Update)
	go func() {
		for range ch {
		}
		close(done)
	}()
	return done
}
