// SPDX-License-Identifier: MIT

package grid

import "math"

const opGradient = "Gradient"

// Gradient returns the spatial derivatives (∂m/∂x, ∂m/∂y) of m sampled on the
// axes x (len == Cols) and y (len == Rows).
// MAIN DESCRIPTION:
//   - Same stencil as numpy.gradient(f, coords, edge_order=1).
//
// Implementation:
//   - Stage 1: validate shape and strict monotonicity of both axes.
//   - Stage 2: per row, differentiate along x; per column, along y.
//
// Behavior highlights:
//   - Interior: second-order central difference on non-uniform spacing
//     hs = c[i]-c[i-1], hd = c[i+1]-c[i]:
//     f'(i) = (hs²·f[i+1] + (hd²-hs²)·f[i] - hd²·f[i-1]) / (hs·hd·(hs+hd)).
//   - Edges: first-order one-sided differences.
//   - A single sample along an axis yields a zero derivative on that axis.
//   - Decreasing axes are legal (signed spacing); NaN propagates to the
//     stencils that touch it.
//
// Errors:
//   - ErrNilGrid; ErrBadCoordinates for length or monotonicity violations.
//
// Complexity:
//   - Time O(r·c), Space O(r·c) for the two results.
func Gradient(m *Dense, x, y []float64) (ddx, ddy *Dense, err error) {
	if err = ValidateNotNil(m); err != nil {
		return nil, nil, gridErrorf(opGradient, err)
	}
	if err = ValidateAxis(x, m.c); err != nil {
		return nil, nil, gridErrorf(opGradient+" x", err)
	}
	if err = ValidateAxis(y, m.r); err != nil {
		return nil, nil, gridErrorf(opGradient+" y", err)
	}

	ddx, ddy = like(m), like(m)

	line := make([]float64, max(m.r, m.c))
	out := make([]float64, max(m.r, m.c))

	// Stage 2a: along x (each row is contiguous).
	var i, j int
	for i = 0; i < m.r; i++ {
		base := i * m.c
		diff1D(m.data[base:base+m.c], x, ddx.data[base:base+m.c])
	}
	// Stage 2b: along y (gather each column).
	for j = 0; j < m.c; j++ {
		for i = 0; i < m.r; i++ {
			line[i] = m.data[i*m.c+j]
		}
		diff1D(line[:m.r], y, out[:m.r])
		for i = 0; i < m.r; i++ {
			ddy.data[i*m.c+j] = out[i]
		}
	}
	maskInf(ddx) // ±Inf from degenerate stencils becomes a masked sample
	maskInf(ddy)

	return ddx, ddy, nil
}

// diff1D writes the numpy-style derivative of f over coords c into dst.
func diff1D(f, c, dst []float64) {
	n := len(f)
	if n == 1 {
		dst[0] = 0
		return
	}
	dst[0] = (f[1] - f[0]) / (c[1] - c[0])
	dst[n-1] = (f[n-1] - f[n-2]) / (c[n-1] - c[n-2])
	for k := 1; k < n-1; k++ {
		hs := c[k] - c[k-1]
		hd := c[k+1] - c[k]
		dst[k] = (hs*hs*f[k+1] + (hd*hd-hs*hs)*f[k] - hd*hd*f[k-1]) / (hs * hd * (hs + hd))
	}
}

// maskInf turns any ±Inf produced by a kernel into NaN.
func maskInf(m *Dense) {
	for idx, v := range m.data {
		if math.IsInf(v, 0) {
			m.data[idx] = math.NaN()
		}
	}
}

// ValidateAxis checks that c has n finite, strictly monotonic samples.
func ValidateAxis(c []float64, n int) error {
	if len(c) != n {
		return ErrBadCoordinates
	}
	for _, v := range c {
		if isNonFinite(v) {
			return ErrBadCoordinates
		}
	}
	if n < 2 {
		return nil
	}
	inc := c[1] > c[0]
	for k := 1; k < n; k++ {
		d := c[k] - c[k-1]
		if d == 0 || (d > 0) != inc {
			return ErrBadCoordinates
		}
	}

	return nil
}
