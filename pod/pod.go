// SPDX-License-Identifier: MIT

// Package pod computes the snapshot proper orthogonal decomposition of the
// velocity fluctuations of a dataset.
//
// The snapshot matrix has one row per frame and one column per velocity
// component of every point that is valid in all frames:
//
//	A[k] = [u'_1 … u'_P, v'_1 … v'_P]
//
// A thin SVD A = U·Σ·Vᵀ (gonum mat.SVD) yields the spatial modes (rows of
// Vᵀ), their energies σ_i² and the temporal coefficients a_k(i) = U[k,i]·σ_i.
package pod

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
)

var (
	// ErrTooFewFrames is returned for datasets with fewer than two frames.
	ErrTooFewFrames = errors.New("pod: at least two frames are required")

	// ErrNoValidPoints is returned when no point is valid in every frame.
	ErrNoValidPoints = errors.New("pod: no point is valid in every frame")

	// ErrFactorize is returned when the SVD does not converge.
	ErrFactorize = errors.New("pod: SVD factorization failed")

	// ErrModeIndex is returned for a mode index outside [0, Len()).
	ErrModeIndex = errors.New("pod: mode index out of range")
)

// Option customizes Decompose.
type Option func(*options)

type options struct {
	modes int // 0 keeps every mode
}

// WithModes keeps only the n most energetic modes. Panics if n < 1.
func WithModes(n int) Option {
	if n < 1 {
		panic("pod: WithModes(n<1)")
	}
	return func(o *options) { o.modes = n }
}

// Result holds a decomposition.
type Result struct {
	// Energy is the fraction of fluctuation energy of each mode, decreasing.
	Energy []float64
	// Coefficients is T×M: row k holds the projection of frame k on each mode.
	Coefficients *mat.Dense

	mean   *field.Dataset // time average, single frame
	points []int          // row-major indices of the valid points
	modes  *mat.Dense     // M×2P, rows are unit spatial modes
	source *field.Dataset // geometry and attrs
}

// Len returns the number of kept modes.
func (r *Result) Len() int { return len(r.Energy) }

// Mean returns the time-averaged field subtracted before decomposition.
func (r *Result) Mean() *field.Dataset { return r.mean.Clone() }

// Decompose computes the snapshot POD of ds.
//
// Errors: ErrTooFewFrames, ErrNoValidPoints, ErrFactorize, wrapped field errors.
//
// Complexity: O(T²·P) for T frames and P valid points.
func Decompose(ds *field.Dataset, opts ...Option) (*Result, error) {
	if ds == nil || ds.Len() < 2 {
		return nil, ErrTooFewFrames
	}
	o := options{}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	mean, err := ds.Average()
	if err != nil {
		return nil, fmt.Errorf("pod: %w", err)
	}
	fl, err := ds.Fluctuations()
	if err != nil {
		return nil, fmt.Errorf("pod: %w", err)
	}
	points := validPoints(fl)
	if len(points) == 0 {
		return nil, ErrNoValidPoints
	}

	t, p := fl.Len(), len(points)
	a := mat.NewDense(t, 2*p, nil)
	for k, f := range fl.Frames {
		u, v := f.U.Raw(), f.V.Raw()
		for c, idx := range points {
			a.Set(k, c, u[idx])
			a.Set(k, p+c, v[idx])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, ErrFactorize
	}
	sigma := svd.Values(nil)
	var uMat, vMat mat.Dense
	svd.UTo(&uMat)
	svd.VTo(&vMat)

	m := len(sigma)
	if o.modes > 0 && o.modes < m {
		m = o.modes
	}
	energy := make([]float64, len(sigma))
	for i, s := range sigma {
		energy[i] = s * s
	}
	total := floats.Sum(energy)
	if total > 0 {
		floats.Scale(1/total, energy)
	}

	coef := mat.NewDense(t, m, nil)
	modes := mat.NewDense(m, 2*p, nil)
	for i := 0; i < m; i++ {
		for k := 0; k < t; k++ {
			coef.Set(k, i, uMat.At(k, i)*sigma[i])
		}
		for c := 0; c < 2*p; c++ {
			modes.Set(i, c, vMat.At(c, i))
		}
	}

	return &Result{
		Energy:       energy[:m],
		Coefficients: coef,
		mean:         mean,
		points:       points,
		modes:        modes,
		source:       ds,
	}, nil
}

// validPoints lists the row-major indices where u and v are valid in every frame.
func validPoints(ds *field.Dataset) []int {
	n := ds.Frames[0].U.Len()
	var out []int
	for idx := 0; idx < n; idx++ {
		ok := true
		for _, f := range ds.Frames {
			if math.IsNaN(f.U.Raw()[idx]) || math.IsNaN(f.V.Raw()[idx]) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, idx)
		}
	}
	return out
}

// Mode returns spatial mode i as a single-frame dataset (unit norm over the
// valid points, NaN elsewhere). W holds the mode magnitude.
func (r *Result) Mode(i int) (*field.Dataset, error) {
	if i < 0 || i >= r.Len() {
		return nil, ErrModeIndex
	}
	row := r.modes.RawRowView(i)
	return r.field(func(c int) float64 { return row[c] }, "mode")
}

// Reconstruct rebuilds frame k from the mean and the first n modes
// (n ≤ 0 or n > Len() uses every kept mode). Points that were not valid in
// every frame are NaN.
func (r *Result) Reconstruct(k, n int) (*field.Dataset, error) {
	t, _ := r.Coefficients.Dims()
	if k < 0 || k >= t {
		return nil, field.ErrFrameIndex
	}
	if n <= 0 || n > r.Len() {
		n = r.Len()
	}
	mu, mv := r.mean.Frames[0].U.Raw(), r.mean.Frames[0].V.Raw()
	p := len(r.points)
	out, err := r.field(func(c int) float64 {
		var s float64
		for i := 0; i < n; i++ {
			s += r.Coefficients.At(k, i) * r.modes.At(i, c)
		}
		if c < p {
			return mu[r.points[c]] + s
		}
		return mv[r.points[c-p]] + s
	}, "")
	if err != nil {
		return nil, err
	}
	out.Frames[0].T = r.source.Frames[k].T
	return out, nil
}

// field lays a snapshot-column function back onto the grid.
func (r *Result) field(value func(c int) float64, scalar string) (*field.Dataset, error) {
	rows, cols := r.source.Shape()
	u, err := grid.NaNs(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("pod: %w", err)
	}
	v, _ := grid.NaNs(rows, cols)
	ur, vr := u.Raw(), v.Raw()
	p := len(r.points)
	for c, idx := range r.points {
		ur[idx] = value(c)
		vr[idx] = value(p + c)
	}
	frame := field.Frame{U: u, V: v}
	if scalar != "" {
		if frame.W, err = grid.Hypot(u, v); err != nil {
			return nil, fmt.Errorf("pod: %w", err)
		}
	}
	attrs := r.source.Attrs
	attrs.Files = nil
	ds, err := field.New(append([]float64(nil), r.source.X...), append([]float64(nil), r.source.Y...), []field.Frame{frame}, attrs)
	if err != nil {
		return nil, fmt.Errorf("pod: %w", err)
	}
	ds.Scalar = scalar
	return ds, nil
}
