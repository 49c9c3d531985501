// SPDX-License-Identifier: MIT

package field

import (
	"math"

	"github.com/katalvlaran/lvlpiv/grid"
)

// Filter smooths U and V of every frame with a NaN-aware Gaussian of
// standard deviation sigma, expressed in grid samples. Masked vectors stay
// masked. sigma == 0 returns a copy.
//
// Errors: ErrEmptyDataset; ErrBadParameter for negative or non-finite sigma.
//
// Complexity: O(T·r·c·σ).
func (ds *Dataset) Filter(sigma float64, opts ...Option) (*Dataset, error) {
	const op = "Filter"
	if ds == nil || ds.Len() == 0 {
		return nil, fieldErrorf(op, ErrEmptyDataset)
	}
	if isNonFinite(sigma) || sigma < 0 {
		return nil, fieldErrorf(op, ErrBadParameter)
	}

	return ds.mapVelocity(op, opts, func(m *grid.Dense) (*grid.Dense, error) {
		return grid.GaussianFilter(m, sigma)
	})
}

// MedianSmooth replaces U and V by their NaN-aware size×size median.
// Errors: ErrBadParameter when size is not a positive odd number.
func (ds *Dataset) MedianSmooth(size int, opts ...Option) (*Dataset, error) {
	const op = "MedianSmooth"
	if ds == nil || ds.Len() == 0 {
		return nil, fieldErrorf(op, ErrEmptyDataset)
	}
	if size < 1 || size%2 == 0 {
		return nil, fieldErrorf(op, ErrBadParameter)
	}

	return ds.mapVelocity(op, opts, func(m *grid.Dense) (*grid.Dense, error) {
		return grid.MedianFilter(m, size)
	})
}

// FillNaNs replaces masked vectors by the mean of their valid 8-neighbours.
// MAIN DESCRIPTION:
//   - Jacobi sweeps: every sweep reads the previous state, so holes shrink
//     by one ring per iteration and the result does not depend on scan order.
//   - Stops after maxIter sweeps or when a sweep fills nothing. Vectors
//     with no valid sample within maxIter rings stay NaN.
//
// Errors: ErrEmptyDataset; ErrBadParameter when maxIter < 1.
//
// Complexity: O(T·maxIter·r·c).
func (ds *Dataset) FillNaNs(maxIter int, opts ...Option) (*Dataset, error) {
	const op = "FillNaNs"
	if ds == nil || ds.Len() == 0 {
		return nil, fieldErrorf(op, ErrEmptyDataset)
	}
	if maxIter < 1 {
		return nil, fieldErrorf(op, ErrBadParameter)
	}

	return ds.mapVelocity(op, opts, func(m *grid.Dense) (*grid.Dense, error) {
		return fillHoles(m, maxIter), nil
	})
}

func fillHoles(m *grid.Dense, maxIter int) *grid.Dense {
	cur := m.Clone()
	next := m.Clone()
	rows, cols := m.Shape()
	var (
		it, i, j, di, dj, n, filled int
		sum, v                      float64
	)
	for it = 0; it < maxIter; it++ {
		src, dst := cur.Raw(), next.Raw()
		copy(dst, src)
		filled = 0
		for i = 0; i < rows; i++ {
			for j = 0; j < cols; j++ {
				if !math.IsNaN(src[i*cols+j]) {
					continue
				}
				sum, n = 0, 0
				for di = -1; di <= 1; di++ {
					for dj = -1; dj <= 1; dj++ {
						if (di == 0 && dj == 0) || i+di < 0 || i+di >= rows || j+dj < 0 || j+dj >= cols {
							continue
						}
						v = src[(i+di)*cols+j+dj]
						if !math.IsNaN(v) {
							sum += v
							n++
						}
					}
				}
				if n > 0 {
					dst[i*cols+j] = sum / float64(n)
					filled++
				}
			}
		}
		cur, next = next, cur
		if filled == 0 {
			break
		}
	}

	return cur
}

// mapVelocity applies fn to U and V of every frame in parallel. W is dropped
// because it no longer matches the velocity.
func (ds *Dataset) mapVelocity(op string, opts []Option, fn func(*grid.Dense) (*grid.Dense, error)) (*Dataset, error) {
	frames, err := mapFrames(ds.Frames, gatherOptions(opts...), op, func(_ int, f Frame) (Frame, error) {
		out := Frame{T: f.T, CHC: cloneOrNil(f.CHC)}
		var err error
		if out.U, err = fn(f.U); err != nil {
			return Frame{}, err
		}
		if out.V, err = fn(f.V); err != nil {
			return Frame{}, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	out := ds.withFrames(frames)
	out.Scalar = ""

	return out, nil
}
