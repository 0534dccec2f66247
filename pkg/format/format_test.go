package format

import (
	"strings"
	"testing"

	"gitlab.com/tinyland/lab/modeline/pkg/components"
	"gitlab.com/tinyland/lab/modeline/pkg/preset"
)

func fmValues(m map[string]string) ValueFunc {
	return func(name string) string { return m[name] }
}

// --- Assemble ---

func TestAssemblePadsToWidth(t *testing.T) {
	value := fmValues(map[string]string{
		"buffer-id": "a.txt",
		"mode":      "Text",
	})
	line := Assemble([]string{"buffer-id"}, []string{"mode"}, 40, value)

	if got := components.VisibleLen(line); got != 40 {
		t.Fatalf("assembled width = %d, want 40", got)
	}
	if !strings.HasPrefix(line, "a.txt") || !strings.HasSuffix(line, "Text") {
		t.Errorf("line = %q", line)
	}
	// 40 - 5 - 4 = 31 cells of padding between the sides.
	if !strings.Contains(line, strings.Repeat(" ", 31)) {
		t.Errorf("line = %q, want 31-cell gap", line)
	}
}

func TestAssembleConcatenatesInOrder(t *testing.T) {
	value := fmValues(map[string]string{
		"a": "1", "b": "2", "c": "3", "d": "4",
	})
	line := Assemble([]string{"a", "b"}, []string{"c", "d"}, 10, value)
	if !strings.HasPrefix(line, "12") || !strings.HasSuffix(line, "34") {
		t.Errorf("line = %q, want 12...34", line)
	}
}

func TestAssembleEmptySegmentsDisappear(t *testing.T) {
	value := fmValues(map[string]string{
		"a": "x",
		"b": "", // no content: contributes nothing, no double gap
		"c": "y",
	})
	line := Assemble([]string{"a", "b", "c"}, nil, 10, value)
	if !strings.HasPrefix(line, "xy") {
		t.Errorf("line = %q, want xy prefix", line)
	}
}

func TestAssembleUnknownNamesResolveEmpty(t *testing.T) {
	line := Assemble([]string{"nope"}, []string{"also-nope"}, 6, fmValues(nil))
	if line != strings.Repeat(" ", 6) {
		t.Errorf("line = %q, want all padding", line)
	}
}

func TestAssembleOverflowNeverNegative(t *testing.T) {
	value := fmValues(map[string]string{"long": strings.Repeat("x", 30)})
	line := Assemble([]string{"long"}, []string{"long"}, 10, value)
	if components.VisibleLen(line) != 60 {
		t.Errorf("overflow width = %d, want unpadded 60", components.VisibleLen(line))
	}
}

func TestAssembleEmptyLists(t *testing.T) {
	line := Assemble(nil, nil, 4, fmValues(nil))
	if line != "    " {
		t.Errorf("line = %q", line)
	}
}

// --- State ---

func TestNewStateCopiesPreset(t *testing.T) {
	p := preset.Preset{
		Name:  "main",
		Left:  []string{"buffer-id"},
		Right: []string{"mode"},
	}
	st := NewState(p)
	st.Left[0] = "mutated"

	if p.Left[0] != "buffer-id" {
		t.Error("editing state mutated the preset definition")
	}
	if st.PresetName != "main" {
		t.Errorf("PresetName = %q", st.PresetName)
	}
}

func TestInsertClampsIndex(t *testing.T) {
	st := &State{Left: []string{"a", "b"}}
	st.InsertLeft("start", -5)
	st.InsertLeft("end", 99)

	if st.Left[0] != "start" || st.Left[len(st.Left)-1] != "end" {
		t.Errorf("Left = %v", st.Left)
	}
}

func TestInsertRight(t *testing.T) {
	st := &State{Right: []string{"a", "c"}}
	st.InsertRight("b", 1)
	want := []string{"a", "b", "c"}
	for i := range want {
		if st.Right[i] != want[i] {
			t.Fatalf("Right = %v, want %v", st.Right, want)
		}
	}
}

func TestRemoveAllOccurrences(t *testing.T) {
	st := &State{
		Left:  []string{"x", "a", "x"},
		Right: []string{"x", "b"},
	}
	st.Remove("x")

	if len(st.Left) != 1 || st.Left[0] != "a" {
		t.Errorf("Left = %v", st.Left)
	}
	if len(st.Right) != 1 || st.Right[0] != "b" {
		t.Errorf("Right = %v", st.Right)
	}
	if st.Contains("x") {
		t.Error("Contains(\"x\") after Remove")
	}
}

func TestContains(t *testing.T) {
	st := &State{Left: []string{"a"}, Right: []string{"b"}}
	if !st.Contains("a") || !st.Contains("b") || st.Contains("c") {
		t.Errorf("Contains misreported for %v / %v", st.Left, st.Right)
	}
}

// --- Benchmarks ---

func BenchmarkAssemble(b *testing.B) {
	value := fmValues(map[string]string{
		"buffer-state": " ●",
		"buffer-id":    " main.go",
		"position":     " 120:4 45%",
		"vc":           " ⎇ main",
		"mode":         " Go",
	})
	left := []string{"buffer-state", "buffer-id", "position"}
	right := []string{"vc", "mode"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Assemble(left, right, 120, value)
	}
}
