package preset

import (
	"os"
	"path/filepath"
	"testing"
)

// --- Registry ---

func TestBuiltinsSeeded(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"main", "minimal", "project", "vc", "infra"} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("builtin preset %q missing", name)
		}
	}
}

func TestGetFallsBackToMain(t *testing.T) {
	r := NewRegistry()
	p := r.Get("no-such-preset")
	if p.Name != "main" {
		t.Errorf("Get fallback = %q, want main", p.Name)
	}
}

func TestDefineOverwrites(t *testing.T) {
	r := NewRegistry()
	r.Define(Preset{Name: "main", Left: []string{"clock"}})
	p := r.Get("main")
	if len(p.Left) != 1 || p.Left[0] != "clock" {
		t.Errorf("redefined main = %v", p.Left)
	}
}

func TestNamesSorted(t *testing.T) {
	r := NewRegistry()
	names := r.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names not sorted: %v", names)
		}
	}
}

// --- Copy isolation ---

func TestCopyLeftIsolation(t *testing.T) {
	p := Preset{Name: "x", Left: []string{"a", "b"}}
	cp := p.CopyLeft()
	cp[0] = "mutated"
	if p.Left[0] != "a" {
		t.Error("CopyLeft shares backing array with the definition")
	}
}

func TestAssignmentsIndependent(t *testing.T) {
	// Two surfaces built from the same preset must not see each other's
	// edits.
	r := NewRegistry()
	p := r.Get("main")

	one := p.CopyLeft()
	two := p.CopyLeft()
	one[0] = "selection-info"

	if two[0] == "selection-info" {
		t.Error("edit on one surface's copy leaked into the other")
	}
	if r.Get("main").Left[0] == "selection-info" {
		t.Error("edit leaked into the registry definition")
	}
}

// --- TOML / YAML loading ---

const prTOMLDoc = `
[[presets]]
name = "writing"
description = "Prose-focused layout"
left = ["buffer-id", "selection"]
right = ["clock"]

[[presets]]
name = "bare"
left = ["buffer-id"]
right = []
`

func TestLoadFromTOML(t *testing.T) {
	ps, err := LoadFromTOML([]byte(prTOMLDoc))
	if err != nil {
		t.Fatalf("LoadFromTOML: %v", err)
	}
	if len(ps) != 2 {
		t.Fatalf("loaded %d presets, want 2", len(ps))
	}
	if ps[0].Name != "writing" || len(ps[0].Left) != 2 {
		t.Errorf("preset[0] = %+v", ps[0])
	}
}

const prYAMLDoc = `
presets:
  - name: writing
    description: Prose-focused layout
    left: [buffer-id, selection]
    right: [clock]
`

func TestLoadFromYAML(t *testing.T) {
	ps, err := LoadFromYAML([]byte(prYAMLDoc))
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if len(ps) != 1 || ps[0].Name != "writing" {
		t.Fatalf("loaded = %+v", ps)
	}
	if ps[0].Right[0] != "clock" {
		t.Errorf("Right = %v", ps[0].Right)
	}
}

func TestLoadTOMLFileIntoRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.toml")
	if err := os.WriteFile(path, []byte(prTOMLDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry()
	if err := r.LoadTOMLFile(path); err != nil {
		t.Fatalf("LoadTOMLFile: %v", err)
	}
	if _, ok := r.Lookup("writing"); !ok {
		t.Error("loaded preset not registered")
	}
}

func TestSaveToTOMLRoundTrip(t *testing.T) {
	in := []Preset{{
		Name:  "x",
		Left:  []string{"buffer-id"},
		Right: []string{"mode"},
	}}
	data, err := SaveToTOML(in)
	if err != nil {
		t.Fatalf("SaveToTOML: %v", err)
	}
	out, err := LoadFromTOML(data)
	if err != nil {
		t.Fatalf("LoadFromTOML: %v", err)
	}
	if len(out) != 1 || out[0].Name != "x" || out[0].Right[0] != "mode" {
		t.Errorf("round trip = %+v", out)
	}
}

// --- Width selection ---

func TestSelectForWidth(t *testing.T) {
	cases := []struct {
		width int
		want  string
	}{
		{30, "minimal"},
		{49, "minimal"},
		{50, "main"},
		{139, "main"},
		{140, "infra"},
		{200, "infra"},
	}
	for _, tc := range cases {
		if got := SelectForWidth(tc.width); got != tc.want {
			t.Errorf("SelectForWidth(%d) = %q, want %q", tc.width, got, tc.want)
		}
	}
}

func TestSelectConfiguredWins(t *testing.T) {
	if got := Select("vc", 30); got != "vc" {
		t.Errorf("Select(configured) = %q, want vc", got)
	}
	if got := Select("", 30); got != "minimal" {
		t.Errorf("Select(empty) = %q, want width pick", got)
	}
}
