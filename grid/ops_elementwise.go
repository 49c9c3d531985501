// SPDX-License-Identifier: MIT

// Package grid: element-wise kernels.
//
// Every kernel validates operands up front, allocates a fresh result and
// walks the flat buffers in index order. NaN propagates through arithmetic
// (a masked vector stays masked); the result inherits the policy of the
// first operand.
package grid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Operation tags for unified error wrapping.
const (
	opAdd        = "Add"
	opSub        = "Sub"
	opScale      = "Scale"
	opAddScalar  = "AddScalar"
	opHadamard   = "Hadamard"
	opHypot      = "Hypot"
	opClip       = "Clip"
	opReplaceNaN = "ReplaceNaN"
	opAllClose   = "AllClose"
	opZip        = "Zip"
)

// ValidateNotNil returns ErrNilGrid when m is nil.
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return ErrNilGrid
	}

	return nil
}

// ValidateSameShape checks both operands are present and share dimensions.
func ValidateSameShape(a, b *Dense) error {
	if a == nil || b == nil {
		return ErrNilGrid
	}
	if a.r != b.r || a.c != b.c {
		return ErrDimensionMismatch
	}

	return nil
}

// like allocates a zero grid with the shape and policy of m.
func like(m *Dense) *Dense {
	return &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data)), allowInf: m.allowInf}
}

// Add returns a + b.
// Complexity: O(r·c) time and memory.
func Add(a, b *Dense) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, gridErrorf(opAdd, err)
	}
	res := like(a)
	copy(res.data, a.data)
	floats.Add(res.data, b.data)

	return res, nil
}

// Sub returns a - b.
// Complexity: O(r·c) time and memory.
func Sub(a, b *Dense) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, gridErrorf(opSub, err)
	}
	res := like(a)
	floats.SubTo(res.data, a.data, b.data)

	return res, nil
}

// Scale returns alpha·m. alpha must be finite.
func Scale(m *Dense, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, gridErrorf(opScale, err)
	}
	if isNonFinite(alpha) {
		return nil, gridErrorf(opScale, ErrNonFinite)
	}
	res := m.Clone()
	floats.Scale(alpha, res.data)

	return res, nil
}

// AddScalar returns m + s. s must be finite.
func AddScalar(m *Dense, s float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, gridErrorf(opAddScalar, err)
	}
	if isNonFinite(s) {
		return nil, gridErrorf(opAddScalar, ErrNonFinite)
	}
	res := m.Clone()
	floats.AddConst(s, res.data)

	return res, nil
}

// Hadamard returns the element-wise product a ∘ b.
func Hadamard(a, b *Dense) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, gridErrorf(opHadamard, err)
	}
	res := like(a)
	floats.MulTo(res.data, a.data, b.data)

	return res, nil
}

// Hypot returns sqrt(a² + b²) element-wise, the vector magnitude of (a, b).
func Hypot(a, b *Dense) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, gridErrorf(opHypot, err)
	}
	res := like(a)
	for idx := range res.data {
		res.data[idx] = math.Hypot(a.data[idx], b.data[idx])
	}

	return res, nil
}

// Zip combines a and b sample by sample with f. The result inherits a's
// policy; f producing ±Inf under the default policy fails with ErrNonFinite.
func Zip(a, b *Dense, f func(x, y float64) float64) (*Dense, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, gridErrorf(opZip, err)
	}
	res := like(a)
	for idx := range res.data {
		v := f(a.data[idx], b.data[idx])
		if !res.allowInf && math.IsInf(v, 0) {
			return nil, denseErrorf(opZip, idx/res.c, idx%res.c, ErrNonFinite)
		}
		res.data[idx] = v
	}

	return res, nil
}

// Clip copies m clamping each sample into [lo, hi]; NaN stays NaN.
// Bounds must be finite; if lo > hi they are swapped.
func Clip(m *Dense, lo, hi float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, gridErrorf(opClip, err)
	}
	if isNonFinite(lo) || isNonFinite(hi) {
		return nil, gridErrorf(opClip, ErrNonFinite)
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	res := like(m)
	for idx, v := range m.data {
		if v < lo {
			v = lo
		} else if v > hi {
			v = hi
		}
		res.data[idx] = v
	}

	return res, nil
}

// ReplaceNaN copies m replacing every NaN (and ±Inf) by val (finite).
func ReplaceNaN(m *Dense, val float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, gridErrorf(opReplaceNaN, err)
	}
	if isNonFinite(val) {
		return nil, gridErrorf(opReplaceNaN, ErrNonFinite)
	}
	res := like(m)
	for idx, v := range m.data {
		if isNonFinite(v) {
			v = val
		}
		res.data[idx] = v
	}

	return res, nil
}

// AllClose checks |a-b| ≤ atol + rtol·|b| element-wise for identical shapes.
// Two NaN samples compare equal (both masked); NaN against a number does not.
// Negative tolerances are normalized to their absolute value.
//
// Complexity: O(r·c) time, O(1) space, early exit on first violation.
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if isNonFinite(rtol) || isNonFinite(atol) {
		return false, gridErrorf(opAllClose, ErrNonFinite)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	if err := ValidateSameShape(a, b); err != nil {
		return false, gridErrorf(opAllClose, err)
	}
	for idx := range a.data {
		av, bv := a.data[idx], b.data[idx]
		an, bn := math.IsNaN(av), math.IsNaN(bv)
		if an || bn {
			if an != bn {
				return false, nil
			}
			continue
		}
		if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}

	return true, nil
}
