// Package layout splits rectangular terminal areas into panes. The demo
// editor host uses it to carve the screen into surfaces, each of which
// carries its own modeline.
//
// Constraint types:
//   - Length(n): fixed size in cells
//   - Percentage(p): percentage of available space (0-100)
//   - Fill(w): fills remaining space proportional to weight
//
// Fixed sizes are allocated first; whatever remains is distributed to
// Fill items by weight, with the last Fill absorbing rounding drift.
package layout

// Rect represents a rectangular area in terminal cells.
type Rect struct {
	X, Y, Width, Height int
}

// Empty returns true if this rectangle has zero area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the X coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the Y coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Contains returns true if the point (px, py) lies within this rectangle.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px < r.Right() && py >= r.Y && py < r.Bottom()
}

// Direction controls the axis along which a split runs.
type Direction int

const (
	// Horizontal splits left-to-right (constraints control width).
	Horizontal Direction = iota
	// Vertical splits top-to-bottom (constraints control height).
	Vertical
)

// Constraint is the interface satisfied by all constraint types.
// The marker method prevents external implementations.
type Constraint interface {
	constraint() // sealed marker
}

// Length allocates exactly Value cells.
type Length struct{ Value int }

func (Length) constraint() {}

// Percentage allocates Value percent of the available space (0-100).
type Percentage struct{ Value int }

func (Percentage) constraint() {}

// Fill distributes remaining space proportional to Weight.
// A Weight of 0 is treated as 1.
type Fill struct{ Weight int }

func (Fill) constraint() {}

// Split divides area into len(constraints) non-overlapping Rects along
// dir, with spacing cells between neighbors.
func Split(area Rect, dir Direction, spacing int, constraints ...Constraint) []Rect {
	n := len(constraints)
	if n == 0 {
		return nil
	}
	if spacing < 0 {
		spacing = 0
	}
	if area.Empty() {
		out := make([]Rect, n)
		for i := range out {
			out[i] = Rect{X: area.X, Y: area.Y}
		}
		return out
	}

	total := area.Width
	if dir == Vertical {
		total = area.Height
	}
	available := total - spacing*(n-1)
	if available < 0 {
		available = 0
	}

	allocs := make([]int, n)
	fillWeights := make([]int, n)
	totalFillWeight := 0
	fixedUsed := 0

	for i, c := range constraints {
		switch v := c.(type) {
		case Length:
			allocs[i] = clampNonNeg(v.Value)
			fixedUsed += allocs[i]
		case Percentage:
			p := v.Value
			if p < 0 {
				p = 0
			}
			if p > 100 {
				p = 100
			}
			allocs[i] = available * p / 100
			fixedUsed += allocs[i]
		case Fill:
			w := v.Weight
			if w <= 0 {
				w = 1
			}
			fillWeights[i] = w
			totalFillWeight += w
		}
	}

	remaining := available - fixedUsed
	if remaining < 0 {
		remaining = 0
	}
	if totalFillWeight > 0 {
		distributed := 0
		lastFill := -1
		for i := 0; i < n; i++ {
			if fillWeights[i] > 0 {
				lastFill = i
			}
		}
		for i := 0; i < n; i++ {
			if fillWeights[i] == 0 {
				continue
			}
			if i == lastFill {
				// Remainder goes to the last fill to avoid rounding drift.
				allocs[i] = remaining - distributed
			} else {
				allocs[i] = remaining * fillWeights[i] / totalFillWeight
				distributed += allocs[i]
			}
		}
	}

	// Convert 1-D allocations to Rects along the axis.
	out := make([]Rect, n)
	pos := area.X
	if dir == Vertical {
		pos = area.Y
	}
	for i, size := range allocs {
		if dir == Horizontal {
			out[i] = Rect{X: pos, Y: area.Y, Width: size, Height: area.Height}
		} else {
			out[i] = Rect{X: area.X, Y: pos, Width: area.Width, Height: size}
		}
		pos += size + spacing
	}
	return out
}

// SplitHorizontal splits area left-to-right with no spacing.
func SplitHorizontal(area Rect, constraints ...Constraint) []Rect {
	return Split(area, Horizontal, 0, constraints...)
}

// SplitVertical splits area top-to-bottom with no spacing.
func SplitVertical(area Rect, constraints ...Constraint) []Rect {
	return Split(area, Vertical, 0, constraints...)
}

func clampNonNeg(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
