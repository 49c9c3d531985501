package regions

import (
	"math"

	"github.com/katalvlaran/lvlpiv/grid"
)

var (
	offsets4 = [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	offsets8 = [][2]int{{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}
)

func offsetsFor(c Connectivity) [][2]int {
	if c == Conn8 {
		return offsets8
	}
	return offsets4
}

// FromGrid marks the cells of m that pass opts.Threshold. NaN is never marked.
// Algorithmic complexity: O(W×H) time and memory.
func FromGrid(m *grid.Dense, opts Options) (*Mask, error) {
	if m == nil {
		return nil, ErrEmptyGrid
	}
	h, w := m.Shape()
	cells := make([]bool, w*h)
	for idx, v := range m.Raw() {
		if math.IsNaN(v) {
			continue
		}
		if opts.Abs {
			v = math.Abs(v)
		}
		cells[idx] = v > opts.Threshold
	}

	return &Mask{Width: w, Height: h, Conn: opts.Conn, cells: cells, neighborOffsets: offsetsFor(opts.Conn)}, nil
}

// FromBool builds a Mask from a non-empty, rectangular [row][col] slice.
// It deep-copies the input.
func FromBool(values [][]bool, conn Connectivity) (*Mask, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	cells := make([]bool, 0, w*h)
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
		cells = append(cells, row...)
	}

	return &Mask{Width: w, Height: h, Conn: conn, cells: cells, neighborOffsets: offsetsFor(conn)}, nil
}

// InBounds reports whether (x,y) lies within the grid boundaries.
func (mk *Mask) InBounds(x, y int) bool {
	return x >= 0 && x < mk.Width && y >= 0 && y < mk.Height
}

// Marked reports whether (x,y) is inside the grid and marked.
func (mk *Mask) Marked(x, y int) bool {
	return mk.InBounds(x, y) && mk.cells[mk.index(x, y)]
}

// Count returns the number of marked cells.
func (mk *Mask) Count() int {
	n := 0
	for _, c := range mk.cells {
		if c {
			n++
		}
	}
	return n
}

// NeighborOffsets returns the (dx, dy) offsets for the mask connectivity.
func (mk *Mask) NeighborOffsets() [][2]int {
	return mk.neighborOffsets
}

// index maps (x,y) to a row-major index: y*Width + x.
func (mk *Mask) index(x, y int) int {
	return y*mk.Width + x
}

// Coordinate converts a row-major index back to (x,y).
func (mk *Mask) Coordinate(idx int) (x, y int) {
	return idx % mk.Width, idx / mk.Width
}

// ConnectedComponents finds all contiguous regions of marked cells.
// Regions are ordered by their seed (first cell in row-major scan), cells
// inside a region follow BFS order from the seed.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (mk *Mask) ConnectedComponents() []Region {
	seen := make([]bool, len(mk.cells))
	var comps []Region

	for i0, marked := range mk.cells {
		if !marked || seen[i0] {
			continue
		}
		queue := []int{i0}
		seen[i0] = true
		for qi := 0; qi < len(queue); qi++ {
			ux, uy := mk.Coordinate(queue[qi])
			for _, d := range mk.neighborOffsets {
				vx, vy := ux+d[0], uy+d[1]
				if !mk.Marked(vx, vy) {
					continue
				}
				vi := mk.index(vx, vy)
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, Region{Cells: queue, Seed: i0})
	}

	return comps
}

// Component returns the k-th region of ConnectedComponents.
func (mk *Mask) Component(k int) (Region, error) {
	comps := mk.ConnectedComponents()
	if k < 0 || k >= len(comps) {
		return Region{}, ErrComponentIndex
	}
	return comps[k], nil
}

// Labels returns a row-major label image: 0 for background, k+1 for cells of
// the k-th region.
func (mk *Mask) Labels() []int {
	labels := make([]int, len(mk.cells))
	for k, r := range mk.ConnectedComponents() {
		for _, idx := range r.Cells {
			labels[idx] = k + 1
		}
	}
	return labels
}
