// SPDX-License-Identifier: MIT

package sample

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
)

// ErrBadCount is returned by Dataset for a non-positive frame count.
var ErrBadCount = errors.New("sample: frame count must be positive")

// Field returns the single-frame ramp sample (frame index 0).
func Field(opts ...Option) (*field.Dataset, error) {
	return Dataset(1, opts...)
}

// Dataset returns n ramp frames with T = k·dt.
// Errors: ErrBadCount when n < 1.
// Complexity: O(n·rows·cols).
func Dataset(n int, opts ...Option) (*field.Dataset, error) {
	if n < 1 {
		return nil, ErrBadCount
	}
	c := newConfig(opts...)
	rows, cols := c.shape(DefaultRows, DefaultCols)

	x := make([]float64, cols)
	for j := range x {
		x[j] = float64(32 * (j + 1))
	}
	y := make([]float64, rows)
	for i := range y {
		y[i] = float64(16 * (i + 1))
	}
	ramp := linspace(0, 7, cols)
	vramp := linspace(-1, 1, rows)

	frames := make([]field.Frame, n)
	for k := range frames {
		u, err := grid.NewDense(rows, cols)
		if err != nil {
			return nil, fmt.Errorf("sample: %w", err)
		}
		v, _ := grid.NewDense(rows, cols)
		chc, _ := grid.Full(rows, cols, 1)
		ur, vr := u.Raw(), v.Raw()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				ur[i*cols+j] = 1 + float64(k) + ramp[j] + c.draw()
				vr[i*cols+j] = vramp[i] + c.draw()
			}
		}
		frames[k] = field.Frame{T: float64(k) * c.dt, U: u, V: v, CHC: chc}
	}
	attrs := field.DefaultAttrs()
	attrs.Dt = c.dt

	return field.New(x, y, frames, attrs)
}

// draw returns one noise sample, 0 when noise is off.
func (c config) draw() float64 {
	if c.noise == 0 {
		return 0
	}
	return c.noise * c.rng.NormFloat64()
}

// linspace returns n evenly spaced values from lo to hi inclusive; a single
// value is lo.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

// LambOseen returns one frame of a Lamb–Oseen vortex on x = 0..cols-1,
// y = 0..rows-1 (default 21×21):
//
//	u_θ(r) = Γ / (2πr) · (1 − exp(−r²/rc²))
//
// with u = −u_θ·(y−yc)/r and v = u_θ·(x−xc)/r; the centre sample is at rest.
func LambOseen(opts ...Option) (*field.Dataset, error) {
	c := newConfig(opts...)
	rows, cols := c.shape(DefaultVortexSize, DefaultVortexSize)
	if !c.centered {
		c.cx, c.cy = float64(cols-1)/2, float64(rows-1)/2
	}

	x, y := linspace(0, float64(cols-1), cols), linspace(0, float64(rows-1), rows)
	u, err := grid.NewDense(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}
	v, _ := grid.NewDense(rows, cols)
	chc, _ := grid.Full(rows, cols, 1)
	ur, vr := u.Raw(), v.Raw()
	var dx, dy, r, ut float64
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			dx, dy = x[j]-c.cx, y[i]-c.cy
			r = math.Hypot(dx, dy)
			if r == 0 {
				continue
			}
			ut = c.circulation / (2 * math.Pi * r) * (1 - math.Exp(-r*r/(c.core*c.core)))
			ur[i*cols+j] = -ut*dy/r + c.draw()
			vr[i*cols+j] = ut*dx/r + c.draw()
		}
	}
	attrs := field.DefaultAttrs()
	attrs.Dt = c.dt

	return field.New(x, y, []field.Frame{{U: u, V: v, CHC: chc}}, attrs)
}
