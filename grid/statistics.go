// SPDX-License-Identifier: MIT
// Package: grid
//
// Purpose:
//   - NaN-aware reductions over a grid (numpy nanmean/nanstd/nanmedian
//     semantics): masked samples are skipped, an all-masked grid yields NaN.
//   - Reductions are composed over gonum floats/stat kernels on the compacted
//     slice of valid samples.
package grid

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ValidValues returns the non-NaN, finite samples of m in row-major order.
// Complexity: O(r·c).
func ValidValues(m *Dense) []float64 {
	if m == nil {
		return nil
	}
	out := make([]float64, 0, len(m.data))
	for _, v := range m.data {
		if !isNonFinite(v) {
			out = append(out, v)
		}
	}

	return out
}

// CountValid returns the number of finite samples.
func CountValid(m *Dense) int {
	if m == nil {
		return 0
	}
	n := 0
	for _, v := range m.data {
		if !isNonFinite(v) {
			n++
		}
	}

	return n
}

// NaNMean returns the mean of the valid samples, NaN if there are none.
func NaNMean(m *Dense) float64 {
	vals := ValidValues(m)
	if len(vals) == 0 {
		return math.NaN()
	}

	return stat.Mean(vals, nil)
}

// NaNStd returns the population standard deviation (ddof = 0) of the valid
// samples, NaN if there are none.
func NaNStd(m *Dense) float64 {
	vals := ValidValues(m)
	if len(vals) == 0 {
		return math.NaN()
	}
	_, std := stat.PopMeanStdDev(vals, nil)

	return std
}

// NaNMedian returns the median of the valid samples; for an even count it is
// the mean of the two middle values. NaN if there are none.
func NaNMedian(m *Dense) float64 {
	return median(ValidValues(m))
}

// NaNMin returns the smallest valid sample, NaN if there are none.
func NaNMin(m *Dense) float64 {
	vals := ValidValues(m)
	if len(vals) == 0 {
		return math.NaN()
	}

	return floats.Min(vals)
}

// NaNMax returns the largest valid sample, NaN if there are none.
func NaNMax(m *Dense) float64 {
	vals := ValidValues(m)
	if len(vals) == 0 {
		return math.NaN()
	}

	return floats.Max(vals)
}

// NaNAbsMax returns max |v| over valid samples, NaN if there are none.
func NaNAbsMax(m *Dense) float64 {
	lo, hi := NaNMin(m), NaNMax(m)
	if math.IsNaN(lo) {
		return lo
	}

	return math.Max(math.Abs(lo), math.Abs(hi))
}

// median sorts vals in place and returns the middle value. NaN for empty input.
func median(vals []float64) float64 {
	n := len(vals)
	if n == 0 {
		return math.NaN()
	}
	sort.Float64s(vals)
	if n%2 == 1 {
		return vals[n/2]
	}

	return 0.5 * (vals[n/2-1] + vals[n/2])
}

// Median is the exported form of the slice median used by other packages.
// NaN samples are skipped; vals is not modified.
func Median(vals []float64) float64 {
	cp := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !isNonFinite(v) {
			cp = append(cp, v)
		}
	}

	return median(cp)
}

// MeanOf returns the NaN-aware element-wise mean of equally shaped grids.
// A sample is NaN only when it is masked in every input.
//
// Errors:
//   - ErrNilGrid when no grid (or a nil grid) is given.
//   - ErrDimensionMismatch on differing shapes.
//
// Complexity: O(k·r·c) for k grids.
func MeanOf(ms ...*Dense) (*Dense, error) {
	if len(ms) == 0 {
		return nil, gridErrorf("MeanOf", ErrNilGrid)
	}
	for _, m := range ms {
		if err := ValidateSameShape(ms[0], m); err != nil {
			return nil, gridErrorf("MeanOf", err)
		}
	}
	res := like(ms[0])
	count := make([]int, len(res.data))
	for _, m := range ms {
		for idx, v := range m.data {
			if isNonFinite(v) {
				continue
			}
			res.data[idx] += v
			count[idx]++
		}
	}
	for idx := range res.data {
		if count[idx] == 0 {
			res.data[idx] = math.NaN()
			continue
		}
		res.data[idx] /= float64(count[idx])
	}

	return res, nil
}
