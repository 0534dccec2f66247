package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func caStore(t *testing.T, ttl time.Duration) *Store {
	t.Helper()
	s, err := NewStore(StoreConfig{Dir: t.TempDir(), DefaultTTL: ttl})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

// --- Put / Get ---

func TestPutGetRoundTrip(t *testing.T) {
	s := caStore(t, time.Hour)
	if err := s.Put("vcs", []byte(`{"branch":"main"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	data, ok := s.Get("vcs")
	if !ok {
		t.Fatal("Get miss after Put")
	}
	if string(data) != `{"branch":"main"}` {
		t.Errorf("Get = %s", data)
	}
}

func TestGetMissingKey(t *testing.T) {
	s := caStore(t, time.Hour)
	if _, ok := s.Get("nope"); ok {
		t.Error("Get hit for missing key")
	}
}

func TestPutOverwrites(t *testing.T) {
	s := caStore(t, time.Hour)
	s.Put("k", []byte(`1`))
	s.Put("k", []byte(`2`))
	data, _ := s.Get("k")
	if string(data) != "2" {
		t.Errorf("Get = %s, want 2", data)
	}
}

func TestDelete(t *testing.T) {
	s := caStore(t, time.Hour)
	s.Put("k", []byte(`1`))
	if err := s.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Has("k") {
		t.Error("key survives Delete")
	}
	if err := s.Delete("k"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
}

// --- TTL ---

func TestExpiredEntryIsMissing(t *testing.T) {
	s := caStore(t, time.Hour)
	if err := s.PutWithTTL("k", []byte(`1`), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok := s.Get("k"); ok {
		t.Error("expired entry still readable")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	_ = caStore(t, time.Hour)
	env := envelope{Key: "k", Created: time.Now().Add(-1000 * time.Hour).UnixNano(), TTLNS: 0}
	if env.expired(time.Now()) {
		t.Error("zero-TTL entry reported expired")
	}
}

func TestPruneRemovesExpired(t *testing.T) {
	s := caStore(t, time.Hour)
	s.PutWithTTL("old", []byte(`1`), time.Nanosecond)
	s.Put("fresh", []byte(`2`))
	time.Sleep(5 * time.Millisecond)

	removed, err := s.Prune()
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune removed %d, want 1", removed)
	}
	if !s.Has("fresh") {
		t.Error("Prune removed a live entry")
	}
}

// --- Persistence across instances ---

func TestSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s1, err := NewStore(StoreConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	s1.Put("k", []byte(`"v"`))

	s2, err := NewStore(StoreConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	data, ok := s2.Get("k")
	if !ok || string(data) != `"v"` {
		t.Errorf("reopened Get = (%s, %v)", data, ok)
	}
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(StoreConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	s.Put("a", []byte(`1`))
	s.Put("b", []byte(`2`))

	matches, _ := filepath.Glob(filepath.Join(dir, ".tmp-*"))
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

func TestCorruptFileIsMiss(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(StoreConfig{Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	s.Put("k", []byte(`1`))
	if err := os.WriteFile(s.entryPath("k"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Get("k"); ok {
		t.Error("corrupt entry returned a hit")
	}
}

// --- Typed helpers ---

type caSnap struct {
	Branch string `json:"branch"`
	Count  int    `json:"count"`
}

func TestTypedRoundTrip(t *testing.T) {
	s := caStore(t, time.Hour)
	in := caSnap{Branch: "main", Count: 3}
	if err := PutTyped(s, "vcs", in); err != nil {
		t.Fatalf("PutTyped: %v", err)
	}
	out, ok := GetTyped[caSnap](s, "vcs")
	if !ok {
		t.Fatal("GetTyped miss")
	}
	if out != in {
		t.Errorf("GetTyped = %+v, want %+v", out, in)
	}
}

func TestGetTypedWrongShape(t *testing.T) {
	s := caStore(t, time.Hour)
	s.Put("k", []byte(`"just a string"`))
	if _, ok := GetTyped[caSnap](s, "k"); ok {
		t.Error("GetTyped decoded incompatible JSON")
	}
}

// --- Keys ---

func TestHashKeyIsFilesystemSafe(t *testing.T) {
	h := hashKey("path/with/../separators and spaces")
	if len(h) != 16 {
		t.Errorf("hashKey length = %d, want 16", len(h))
	}
	for _, c := range h {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'f') {
			t.Errorf("hashKey contains non-hex char %q", c)
		}
	}
}
