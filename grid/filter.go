// SPDX-License-Identifier: MIT

// Package grid: NaN-aware smoothing kernels.
package grid

import (
	"math"
)

const (
	opGaussian = "GaussianFilter"
	opMedian   = "MedianFilter"
)

// GaussianFilter smooths m with a separable Gaussian of standard deviation
// sigma (in samples).
// MAIN DESCRIPTION:
//   - scipy.ndimage.gaussian_filter geometry (radius = ⌊truncate·σ + 0.5⌋,
//     mirror boundary by default) made NaN-aware by normalized convolution.
//
// Implementation:
//   - Stage 1: validate sigma; sigma == 0 returns a copy.
//   - Stage 2: build the normalized 1D kernel.
//   - Stage 3: filter rows then columns; each output is Σw·f / Σw over the
//     taps that hold a valid sample.
//   - Stage 4: re-mask the samples that were NaN on input.
//
// Behavior highlights:
//   - A sample whose every tap is masked becomes NaN.
//   - Boundary modes: Reflect (default), Nearest, Skip (see WithBoundary).
//
// Errors:
//   - ErrNilGrid; ErrNonFinite for non-finite sigma; ErrBadShape for sigma < 0.
//
// Complexity:
//   - Time O(r·c·k), Space O(r·c), k = 2·radius+1.
func GaussianFilter(m *Dense, sigma float64, opts ...Option) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, gridErrorf(opGaussian, err)
	}
	if isNonFinite(sigma) {
		return nil, gridErrorf(opGaussian, ErrNonFinite)
	}
	if sigma < 0 {
		return nil, gridErrorf(opGaussian, ErrBadShape)
	}
	if sigma == 0 {
		return m.Clone(), nil
	}
	o := gatherOptions(opts...)

	kernel := gaussianKernel(sigma, o.truncate)
	tmp := like(m)
	res := like(m)

	src := make([]float64, max(m.r, m.c))
	dst := make([]float64, max(m.r, m.c))
	var i, j int
	for i = 0; i < m.r; i++ {
		base := i * m.c
		convolve1D(m.data[base:base+m.c], kernel, o.boundary, tmp.data[base:base+m.c])
	}
	for j = 0; j < m.c; j++ {
		for i = 0; i < m.r; i++ {
			src[i] = tmp.data[i*m.c+j]
		}
		convolve1D(src[:m.r], kernel, o.boundary, dst[:m.r])
		for i = 0; i < m.r; i++ {
			res.data[i*m.c+j] = dst[i]
		}
	}
	for idx, v := range m.data {
		if math.IsNaN(v) {
			res.data[idx] = math.NaN()
		}
	}

	return res, nil
}

// gaussianKernel returns normalized weights w[k], k ∈ [-radius, radius].
func gaussianKernel(sigma, truncate float64) []float64 {
	radius := int(truncate*sigma + 0.5)
	w := make([]float64, 2*radius+1)
	var sum float64
	for k := -radius; k <= radius; k++ {
		v := math.Exp(-0.5 * float64(k*k) / (sigma * sigma))
		w[k+radius] = v
		sum += v
	}
	for k := range w {
		w[k] /= sum
	}

	return w
}

// convolve1D applies the centred kernel to f into dst with normalized
// convolution over valid taps.
func convolve1D(f, kernel []float64, b Boundary, dst []float64) {
	n := len(f)
	radius := len(kernel) / 2
	for p := 0; p < n; p++ {
		var acc, wsum float64
		for k := -radius; k <= radius; k++ {
			q, ok := boundaryIndex(p+k, n, b)
			if !ok {
				continue
			}
			v := f[q]
			if math.IsNaN(v) {
				continue
			}
			w := kernel[k+radius]
			acc += w * v
			wsum += w
		}
		if wsum == 0 {
			dst[p] = math.NaN()
			continue
		}
		dst[p] = acc / wsum
	}
}

// boundaryIndex maps a possibly out-of-range index into [0, n) under b.
// ok is false when the tap must be skipped.
func boundaryIndex(q, n int, b Boundary) (int, bool) {
	if q >= 0 && q < n {
		return q, true
	}
	switch b {
	case Nearest:
		if q < 0 {
			return 0, true
		}
		return n - 1, true
	case Reflect:
		period := 2 * n
		q %= period
		if q < 0 {
			q += period
		}
		if q >= n {
			q = period - q - 1
		}
		return q, true
	default:
		return 0, false
	}
}

// MedianFilter replaces every valid sample by the median of the valid
// samples in the size×size window around it (clipped at the border).
// Masked samples stay masked.
//
// Errors:
//   - ErrNilGrid; ErrBadShape when size is not a positive odd number.
//
// Complexity: O(r·c·s²·log s).
func MedianFilter(m *Dense, size int) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, gridErrorf(opMedian, err)
	}
	if size < 1 || size%2 == 0 {
		return nil, gridErrorf(opMedian, ErrBadShape)
	}
	half := size / 2
	res := like(m)
	buf := make([]float64, 0, size*size)
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			if math.IsNaN(m.data[i*m.c+j]) {
				res.data[i*m.c+j] = math.NaN()
				continue
			}
			w, _, _, err := m.Window(i, j, half)
			if err != nil {
				return nil, gridErrorf(opMedian, err)
			}
			buf = buf[:0]
			w.Do(func(_, _ int, v float64) bool {
				if !math.IsNaN(v) {
					buf = append(buf, v)
				}
				return true
			})
			res.data[i*m.c+j] = median(buf)
		}
	}

	return res, nil
}
