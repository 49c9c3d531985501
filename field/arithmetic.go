// SPDX-License-Identifier: MIT

package field

import (
	"math"
	"strings"

	"github.com/katalvlaran/lvlpiv/grid"
)

// Operation tags for unified error wrapping.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opPan       = "Pan"
	opCrop      = "Crop"
	opSetScale  = "SetScale"
	opSetDt     = "SetDt"
	opMagnitude = "Magnitude"
	opSetTUnits = "SetTUnits"
)

// Add returns a + b frame by frame.
// MAIN DESCRIPTION:
//   - Sums the velocity components only; coordinates, CHC and attrs come
//     from a. W is summed when both operands carry the same scalar.
//
// Errors:
//   - ErrEmptyDataset, ErrFrameCount, ErrCoordsMismatch (tolerance
//     DefaultCoordTolerance), wrapped grid errors.
//
// Complexity: O(T·r·c).
func Add(a, b *Dataset) (*Dataset, error) {
	return combine(opAdd, a, b, grid.Add)
}

// Sub returns a - b frame by frame; see Add for the rules.
func Sub(a, b *Dataset) (*Dataset, error) {
	return combine(opSub, a, b, grid.Sub)
}

func combine(op string, a, b *Dataset, kernel func(x, y *grid.Dense) (*grid.Dense, error)) (*Dataset, error) {
	if a == nil || b == nil || a.Len() == 0 || b.Len() == 0 {
		return nil, fieldErrorf(op, ErrEmptyDataset)
	}
	if a.Len() != b.Len() {
		return nil, fieldErrorf(op, ErrFrameCount)
	}
	if !sameAxes(a, b, DefaultCoordTolerance) {
		return nil, fieldErrorf(op, ErrCoordsMismatch)
	}
	withW := a.Scalar != "" && a.Scalar == b.Scalar && a.HasScalar() && b.HasScalar()

	frames := make([]Frame, a.Len())
	var err error
	for k := range a.Frames {
		fa, fb := a.Frames[k], b.Frames[k]
		out := Frame{T: fa.T, CHC: cloneOrNil(fa.CHC)}
		if out.U, err = kernel(fa.U, fb.U); err != nil {
			return nil, fieldErrorf(op, err)
		}
		if out.V, err = kernel(fa.V, fb.V); err != nil {
			return nil, fieldErrorf(op, err)
		}
		if withW {
			if out.W, err = kernel(fa.W, fb.W); err != nil {
				return nil, fieldErrorf(op, err)
			}
		}
		frames[k] = out
	}
	res := a.withFrames(frames)
	if !withW {
		res.Scalar = ""
	}
	return res, nil
}

// Pan shifts the coordinates by (dx, dy). Velocities are untouched.
func (ds *Dataset) Pan(dx, dy float64) (*Dataset, error) {
	if ds.empty() {
		return nil, fieldErrorf(opPan, ErrEmptyDataset)
	}
	if isNonFinite(dx) || isNonFinite(dy) {
		return nil, fieldErrorf(opPan, ErrBadParameter)
	}
	out := ds.Clone()
	for i := range out.X {
		out.X[i] += dx
	}
	for i := range out.Y {
		out.Y[i] += dy
	}
	return out, nil
}

// Crop keeps the samples with xmin ≤ x ≤ xmax and ymin ≤ y ≤ ymax (bounds are
// normalized when given in reverse order).
//
// Errors: ErrBadParameter for non-finite bounds, ErrEmptySelection when no
// sample falls inside the window.
//
// Complexity: O(T·r'·c') for the kept window.
func (ds *Dataset) Crop(xmin, xmax, ymin, ymax float64) (*Dataset, error) {
	if ds.empty() {
		return nil, fieldErrorf(opCrop, ErrEmptyDataset)
	}
	for _, v := range []float64{xmin, xmax, ymin, ymax} {
		if isNonFinite(v) {
			return nil, fieldErrorf(opCrop, ErrBadParameter)
		}
	}
	c0, c1 := axisWindow(ds.X, xmin, xmax)
	r0, r1 := axisWindow(ds.Y, ymin, ymax)
	if c0 >= c1 || r0 >= r1 {
		return nil, fieldErrorf(opCrop, ErrEmptySelection)
	}

	frames := make([]Frame, ds.Len())
	var err error
	for k, f := range ds.Frames {
		out := Frame{T: f.T}
		if out.U, err = cut(f.U, r0, c0, r1-r0, c1-c0); err != nil {
			return nil, fieldErrorf(opCrop, err)
		}
		if out.V, err = cut(f.V, r0, c0, r1-r0, c1-c0); err != nil {
			return nil, fieldErrorf(opCrop, err)
		}
		if out.CHC, err = cut(f.CHC, r0, c0, r1-r0, c1-c0); err != nil {
			return nil, fieldErrorf(opCrop, err)
		}
		if out.W, err = cut(f.W, r0, c0, r1-r0, c1-c0); err != nil {
			return nil, fieldErrorf(opCrop, err)
		}
		frames[k] = out
	}
	res := ds.withFrames(frames)
	res.X = append([]float64(nil), ds.X[c0:c1]...)
	res.Y = append([]float64(nil), ds.Y[r0:r1]...)
	return res, nil
}

// axisWindow returns the half-open index range of a monotonic axis inside [lo, hi].
func axisWindow(axis []float64, lo, hi float64) (from, to int) {
	if lo > hi {
		lo, hi = hi, lo
	}
	from, to = -1, -1
	for i, v := range axis {
		if v >= lo && v <= hi {
			if from < 0 {
				from = i
			}
			to = i + 1
		}
	}
	if from < 0 {
		return 0, 0
	}
	return from, to
}

// cut copies a window of m; nil stays nil.
func cut(m *grid.Dense, r0, c0, rows, cols int) (*grid.Dense, error) {
	if m == nil {
		return nil, nil
	}
	v, err := m.View(r0, c0, rows, cols)
	if err != nil {
		return nil, err
	}
	return grid.NewDenseFrom(rows, cols, v.Values())
}

// SetScale multiplies coordinates and velocities by s (e.g. pixels -> mm).
// Errors: ErrBadParameter when s is zero or not finite.
func (ds *Dataset) SetScale(s float64) (*Dataset, error) {
	if ds.empty() {
		return nil, fieldErrorf(opSetScale, ErrEmptyDataset)
	}
	if isNonFinite(s) || s == 0 {
		return nil, fieldErrorf(opSetScale, ErrBadParameter)
	}
	out := ds.Clone()
	for i := range out.X {
		out.X[i] *= s
	}
	for i := range out.Y {
		out.Y[i] *= s
	}
	for k := range out.Frames {
		if err := scaleInPlace(out.Frames[k].U, s); err != nil {
			return nil, fieldErrorf(opSetScale, err)
		}
		if err := scaleInPlace(out.Frames[k].V, s); err != nil {
			return nil, fieldErrorf(opSetScale, err)
		}
	}
	return out, nil
}

// SetDt declares a new time step. Velocities are rescaled by old/new so that
// displacement (velocity·dt) is preserved, and frame times become k·dt.
// Errors: ErrBadParameter when dt ≤ 0 or not finite.
func (ds *Dataset) SetDt(dt float64) (*Dataset, error) {
	if ds.empty() {
		return nil, fieldErrorf(opSetDt, ErrEmptyDataset)
	}
	if isNonFinite(dt) || dt <= 0 {
		return nil, fieldErrorf(opSetDt, ErrBadParameter)
	}
	old := ds.Attrs.Dt
	if old <= 0 || isNonFinite(old) {
		old = 1
	}
	out := ds.Clone()
	ratio := old / dt
	for k := range out.Frames {
		out.Frames[k].T = float64(k) * dt
		if err := scaleInPlace(out.Frames[k].U, ratio); err != nil {
			return nil, fieldErrorf(opSetDt, err)
		}
		if err := scaleInPlace(out.Frames[k].V, ratio); err != nil {
			return nil, fieldErrorf(opSetDt, err)
		}
	}
	out.Attrs.Dt = dt
	return out, nil
}

// SetTUnits renames the time unit; the velocity unit becomes "<length>/<unit>".
// Errors: ErrEmptyDataset.
func (ds *Dataset) SetTUnits(unit string) (*Dataset, error) {
	if ds.empty() {
		return nil, fieldErrorf(opSetTUnits, ErrEmptyDataset)
	}
	out := ds.Clone()
	out.Attrs.Units.Time = unit
	length := out.Attrs.Units.Length
	if i := strings.LastIndexByte(out.Attrs.Units.Velocity, '/'); i > 0 {
		length = out.Attrs.Units.Velocity[:i]
	}
	out.Attrs.Units.Velocity = length + "/" + unit
	return out, nil
}

// Magnitude stores |(u, v)| of every frame in W (Scalar "magnitude").
func (ds *Dataset) Magnitude() (*Dataset, error) {
	if ds.empty() {
		return nil, fieldErrorf(opMagnitude, ErrEmptyDataset)
	}
	frames := make([]Frame, ds.Len())
	for k, f := range ds.Frames {
		mag, err := grid.Hypot(f.U, f.V)
		if err != nil {
			return nil, fieldErrorf(opMagnitude, err)
		}
		nf := f.Clone()
		nf.W = mag
		frames[k] = nf
	}
	out := ds.withFrames(frames)
	out.Scalar = PropMagnitude
	return out, nil
}

func scaleInPlace(m *grid.Dense, s float64) error {
	if m == nil {
		return nil
	}
	return m.Apply(func(_, _ int, v float64) float64 { return v * s })
}

func isNonFinite(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }
