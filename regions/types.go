// Package regions defines core types, options, and sentinel errors.
package regions

import "errors"

// Sentinel errors for region extraction.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("regions: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("regions: all rows must have the same length")
	// ErrComponentIndex indicates a requested component index is out of range.
	ErrComponentIndex = errors.New("regions: component index out of range")
)

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

// Options contains tunable parameters for mask construction.
type Options struct {
	// Threshold: a cell is marked when value > Threshold (or |value| > Threshold with Abs).
	Threshold float64
	// Abs compares |value| instead of value.
	Abs bool
	// Conn chooses 4- or 8-directional connectivity.
	Conn Connectivity
}

// DefaultOptions returns Threshold=0, Abs=false, Conn=Conn4.
func DefaultOptions() Options {
	return Options{Threshold: 0, Abs: false, Conn: Conn4}
}

// Mask is an immutable boolean grid. Width and Height are the column and row
// counts; cell (x, y) lives at index y*Width + x.
type Mask struct {
	Width, Height   int
	Conn            Connectivity
	cells           []bool
	neighborOffsets [][2]int
}

// Region summarises one connected component.
type Region struct {
	Cells []int // row-major indices, BFS order from the seed cell
	Seed  int   // first cell in row-major scan order
}

// Area returns the number of cells.
func (r Region) Area() int { return len(r.Cells) }
