// SPDX-License-Identifier: MIT

package vortex

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
)

// Names stored in Dataset.Scalar.
const (
	ScalarGamma1 = "gamma1"
	ScalarGamma2 = "gamma2"
)

// Gamma1 computes Γ1 over a (2n+1)×(2n+1) window for every frame of ds and
// returns a copy whose W holds it. Windows are clipped at the border.
//
// Errors: ErrNilDataset, ErrBadWindow (n < 1), ctx.Err() on cancellation.
//
// Complexity: O(T·r·c·(2n+1)²) time, O(T·r·c) memory.
func Gamma1(ctx context.Context, ds *field.Dataset, n int, opts ...Option) (*field.Dataset, error) {
	return gammaDataset(ctx, "Gamma1", ScalarGamma1, ds, n, false, opts)
}

// Gamma2 is Gamma1 with the window mean velocity subtracted, which makes the
// criterion Galilean invariant. See Gamma1 for errors and cost.
func Gamma2(ctx context.Context, ds *field.Dataset, n int, opts ...Option) (*field.Dataset, error) {
	return gammaDataset(ctx, "Gamma2", ScalarGamma2, ds, n, true, opts)
}

func gammaDataset(ctx context.Context, op, name string, ds *field.Dataset, n int, convective bool, opts []Option) (*field.Dataset, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, vortexErrorf(op, ErrNilDataset)
	}
	if n < 1 {
		return nil, vortexErrorf(op, ErrBadWindow)
	}
	o := gatherOptions(opts...)

	out := ds.Clone()
	for k := range out.Frames {
		w, err := gammaFrame(ctx, out.Frames[k], ds.X, ds.Y, n, convective, o)
		if err != nil {
			return nil, vortexErrorf(op, err)
		}
		out.Frames[k].W = w
	}
	out.Scalar = name
	if o.logger != nil {
		o.logger.Debug("vortex: criterion computed", "scalar", name, "n", n, "frames", out.Len())
	}

	return out, nil
}

// gammaFrame fills one criterion grid, one errgroup task per row.
func gammaFrame(ctx context.Context, f field.Frame, x, y []float64, n int, convective bool, o options) (*grid.Dense, error) {
	rows, cols := f.U.Shape()
	res, err := grid.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	dst := res.Raw()
	u, v := f.U.Raw(), f.V.Raw()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := 0; i < rows; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			for j := 0; j < cols; j++ {
				dst[i*cols+j] = gammaAt(u, v, x, y, rows, cols, i, j, n, convective)
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return res, nil
}

// gammaAt evaluates the criterion at P = (i, j).
func gammaAt(u, v, x, y []float64, rows, cols, i, j, n int, convective bool) float64 {
	r0, r1 := max(i-n, 0), min(i+n+1, rows)
	c0, c1 := max(j-n, 0), min(j+n+1, cols)

	var uc, vc float64
	if convective {
		uc, vc = windowMean(u, cols, r0, r1, c0, c1), windowMean(v, cols, r0, r1, c0, c1)
	}

	var (
		sum, pmx, pmy, um, vm, norm float64
		count                       int
	)
	for a := r0; a < r1; a++ {
		pmy = y[a] - y[i]
		for b := c0; b < c1; b++ {
			pmx = x[b] - x[j]
			um, vm = u[a*cols+b]-uc, v[a*cols+b]-vc
			norm = math.Hypot(pmx, pmy) * math.Hypot(um, vm)
			if norm == 0 || math.IsNaN(norm) {
				continue
			}
			sum += (pmx*vm - pmy*um) / norm
			count++
		}
	}
	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

// windowMean is the NaN-aware mean of a row-major sub-block.
func windowMean(data []float64, cols, r0, r1, c0, c1 int) float64 {
	var sum float64
	var n int
	for a := r0; a < r1; a++ {
		for b := c0; b < c1; b++ {
			if val := data[a*cols+b]; !math.IsNaN(val) {
				sum += val
				n++
			}
		}
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
