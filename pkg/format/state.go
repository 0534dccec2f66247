package format

import "gitlab.com/tinyland/lab/modeline/pkg/preset"

// State is the per-surface modeline layout: the assigned preset's name and
// working copies of its segment lists. The copies may be edited (e.g. a
// selection-info segment spliced in while a region is active) without
// touching the shared preset definition.
type State struct {
	PresetName string
	Left       []string
	Right      []string
}

// NewState builds a surface's format state from a preset. The lists are
// copies; mutating them never corrupts the preset.
func NewState(p preset.Preset) *State {
	return &State{
		PresetName: p.Name,
		Left:       p.CopyLeft(),
		Right:      p.CopyRight(),
	}
}

// InsertLeft inserts a segment name at position i in the left list,
// clamping i into range. Duplicate names are allowed; the cache keys on
// (name, scope) so both occurrences show the same value.
func (s *State) InsertLeft(name string, i int) {
	s.Left = insert(s.Left, name, i)
}

// InsertRight inserts a segment name at position i in the right list,
// clamping i into range.
func (s *State) InsertRight(name string, i int) {
	s.Right = insert(s.Right, name, i)
}

// Remove deletes every occurrence of name from both lists. It is a no-op
// if the name is not present.
func (s *State) Remove(name string) {
	s.Left = remove(s.Left, name)
	s.Right = remove(s.Right, name)
}

// Contains reports whether name appears in either list.
func (s *State) Contains(name string) bool {
	for _, n := range s.Left {
		if n == name {
			return true
		}
	}
	for _, n := range s.Right {
		if n == name {
			return true
		}
	}
	return false
}

func insert(list []string, name string, i int) []string {
	if i < 0 {
		i = 0
	}
	if i > len(list) {
		i = len(list)
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, list[:i]...)
	out = append(out, name)
	out = append(out, list[i:]...)
	return out
}

func remove(list []string, name string) []string {
	out := list[:0]
	for _, n := range list {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
