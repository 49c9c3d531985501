// SPDX-License-Identifier: MIT

// Package grid - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep determinism (fixed loop orders, no map iteration).
//   - Support no-copy windows (View) for moving-window kernels.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); View: O(1).
package grid

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"
	ctxSet   = "Set"
	ctxApply = "Apply"
	ctxView  = "View"
	ctxFrom  = "NewDenseFrom"
)

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf attaches method context and coordinates to a sentinel error.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

// Dense is a concrete row-major grid of float64 samples.
//   - r,c hold dimensions (rows = y samples, cols = x samples).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - allowInf relaxes the finite-only policy of Set/Apply.
type Dense struct {
	r, c     int       // row and column counts (> 0)
	data     []float64 // contiguous row-major storage (len == r*c)
	allowInf bool      // numeric guard: accept ±Inf when true
}

var _ fmt.Stringer = (*Dense)(nil)

// NewDense creates an r×c zero grid.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation and default numeric policy.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and apply options.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:        rows,
		c:        cols,
		data:     make([]float64, rows*cols),
		allowInf: o.allowInf,
	}, nil
}

// NewDenseFrom copies data (row-major, len == rows*cols) into a new grid.
// Errors:
//   - ErrInvalidDimensions for non-positive shape.
//   - ErrDimensionMismatch when len(data) != rows*cols.
//   - ErrNonFinite when data holds ±Inf and the policy forbids it.
//
// Complexity: O(r*c).
func NewDenseFrom(rows, cols int, data []float64, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, gridErrorf(ctxFrom, ErrDimensionMismatch)
	}
	for idx, v := range data {
		if !m.allowInf && math.IsInf(v, 0) {
			return nil, denseErrorf(ctxFrom, idx/cols, idx%cols, ErrNonFinite)
		}
	}
	copy(m.data, data)

	return m, nil
}

// Full creates an r×c grid with every sample equal to v.
// Complexity: O(r*c).
func Full(rows, cols int, v float64, opts ...Option) (*Dense, error) {
	m, err := NewDense(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	if err = m.Fill(v); err != nil {
		return nil, err
	}

	return m, nil
}

// NaNs creates an r×c grid where every vector is masked.
func NaNs(rows, cols int) (*Dense, error) { return Full(rows, cols, math.NaN()) }

// Rows returns the row count (number of y samples).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count (number of x samples).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Len returns rows*cols.
func (m *Dense) Len() int { return len(m.data) }

// Raw exposes the row-major backing slice. Writes through it bypass the
// numeric policy; callers own that responsibility.
func (m *Dense) Raw() []float64 { return m.data }

// SameShape reports whether m and o have identical dimensions.
func (m *Dense) SameShape(o *Dense) bool {
	return m != nil && o != nil && m.r == o.r && m.c == o.c
}

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
// MAIN DESCRIPTION:
//   - Safe element write; NaN is always accepted (masked vector), ±Inf only
//     when the grid was created WithAllowInf.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNonFinite for ±Inf under the default policy.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if !m.allowInf && math.IsInf(v, 0) {
		return denseErrorf(ctxSet, row, col, ErrNonFinite)
	}
	m.data[off] = v

	return nil
}

// Fill assigns v to every sample.
// Complexity: O(r*c).
func (m *Dense) Fill(v float64) error {
	if !m.allowInf && math.IsInf(v, 0) {
		return gridErrorf("Fill", ErrNonFinite)
	}
	for idx := range m.data {
		m.data[idx] = v
	}

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, allowInf: m.allowInf}
}

// String renders rows as lines with comma-separated values, for diagnostics.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Do visits each sample in row-major order; stops early when f returns false.
// Complexity: O(r*c), no allocations.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces each sample with f(i,j,v) in place.
// MAIN DESCRIPTION:
//   - In-place map with policy enforcement and deterministic order.
//
// Behavior highlights:
//   - Early error aborts; samples written before the error remain updated.
//     For all-or-nothing semantics, apply to a Clone and swap on success.
//
// Errors:
//   - ErrNonFinite when f produced ±Inf under the default policy.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	var i, j, base int
	var nv float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			nv = f(i, j, m.data[base+j])
			if !m.allowInf && math.IsInf(nv, 0) {
				return denseErrorf(ctxApply, i, j, ErrNonFinite)
			}
			m.data[base+j] = nv
		}
	}

	return nil
}

// View creates a no-copy window [r0:r0+rows, c0:c0+cols) over the same storage.
// Writes via the view reflect in the base grid.
//
// Errors:
//   - ErrBadShape when the window does not fit inside the grid.
//
// Complexity: O(1).
func (m *Dense) View(r0, c0, rows, cols int) (*View, error) {
	if r0 < 0 || c0 < 0 || rows <= 0 || cols <= 0 || r0+rows > m.r || c0+cols > m.c {
		return nil, fmt.Errorf("Dense.%s(%d,%d,%d,%d): %w", ctxView, r0, c0, rows, cols, ErrBadShape)
	}

	return &View{base: m, r0: r0, c0: c0, r: rows, c: cols}, nil
}

// Window returns the view of the (2n+1)×(2n+1) neighbourhood centred on
// (row, col), clipped to the grid, and the centre position inside the view.
// Complexity: O(1).
func (m *Dense) Window(row, col, n int) (w *View, ci, cj int, err error) {
	if n < 0 {
		return nil, 0, 0, gridErrorf("Window", ErrBadShape)
	}
	if _, err = m.indexOf(row, col); err != nil {
		return nil, 0, 0, denseErrorf("Window", row, col, err)
	}
	r0, c0 := max(row-n, 0), max(col-n, 0)
	r1, c1 := min(row+n+1, m.r), min(col+n+1, m.c)
	w, err = m.View(r0, c0, r1-r0, c1-c0)
	if err != nil {
		return nil, 0, 0, err
	}

	return w, row - r0, col - c0, nil
}

// View is a non-owning window into a Dense (shared storage).
type View struct {
	base *Dense // storage owner
	r0   int    // top row in base
	c0   int    // left column in base
	r    int    // view height
	c    int    // view width
}

// Rows returns the number of rows in the view.
func (v *View) Rows() int { return v.r }

// Cols returns the number of columns in the view.
func (v *View) Cols() int { return v.c }

// Origin returns the top-left position of the view inside its base grid.
func (v *View) Origin() (row, col int) { return v.r0, v.c0 }

// At reads sample (i,j) of the view or returns ErrOutOfRange.
func (v *View) At(i, j int) (float64, error) {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return 0, fmt.Errorf("View.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return v.base.data[(v.r0+i)*v.base.c+(v.c0+j)], nil
}

// Set writes sample (i,j) through to the base grid, honoring its policy.
func (v *View) Set(i, j int, val float64) error {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return fmt.Errorf("View.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if !v.base.allowInf && math.IsInf(val, 0) {
		return fmt.Errorf("View.Set(%d,%d): %w", i, j, ErrNonFinite)
	}
	v.base.data[(v.r0+i)*v.base.c+(v.c0+j)] = val

	return nil
}

// Do visits each sample of the view in row-major order; stops when f returns false.
func (v *View) Do(f func(i, j int, val float64) bool) {
	var i, j, base int
	for i = 0; i < v.r; i++ {
		base = (v.r0+i)*v.base.c + v.c0
		for j = 0; j < v.c; j++ {
			if !f(i, j, v.base.data[base+j]) {
				return
			}
		}
	}
}

// Values copies the view into a fresh row-major slice.
func (v *View) Values() []float64 {
	out := make([]float64, 0, v.r*v.c)
	v.Do(func(_, _ int, val float64) bool {
		out = append(out, val)
		return true
	})

	return out
}
