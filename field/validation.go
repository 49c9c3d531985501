// SPDX-License-Identifier: MIT

package field

import (
	"math"

	"github.com/katalvlaran/lvlpiv/grid"
	"gonum.org/v1/gonum/stat"
)

// Report summarizes a validation pass.
type Report struct {
	Checked  int   // vectors that were valid before the pass
	Rejected int   // vectors masked by the pass
	PerFrame []int // rejections per frame, in frame order
}

// Ratio returns Rejected/Checked, 0 when nothing was checked.
func (r Report) Ratio() float64 {
	if r.Checked == 0 {
		return 0
	}
	return float64(r.Rejected) / float64(r.Checked)
}

// rejectFunc decides, for the valid vector at (i, j), whether to mask it.
type rejectFunc func(f Frame, i, j int) bool

// MedianTest applies the normalized median test of Westerweel & Scarano
// over the 3×3 neighbourhood of every valid vector.
// MAIN DESCRIPTION:
//   - For each component c ∈ {u, v}: c_m is the median of the valid
//     neighbours, r_m the median of their residuals |c_i − c_m| and
//     r = |c_0 − c_m| / (r_m + eps).
//   - The vector is rejected when r > threshold for either component.
//   - A vector without valid neighbours is kept.
//
// Errors: ErrEmptyDataset; ErrBadParameter for threshold ≤ 0 or eps < 0.
//
// Complexity: O(T·r·c).
func (ds *Dataset) MedianTest(threshold, eps float64, opts ...Option) (*Dataset, Report, error) {
	const op = "MedianTest"
	if isNonFinite(threshold) || isNonFinite(eps) || threshold <= 0 || eps < 0 {
		return nil, Report{}, fieldErrorf(op, ErrBadParameter)
	}

	return ds.reject(op, opts, func(Frame) rejectFunc {
		vals, res := make([]float64, 0, 8), make([]float64, 0, 8)
		return func(f Frame, i, j int) bool {
			return medianResidual(f.U, i, j, eps, vals, res) > threshold ||
				medianResidual(f.V, i, j, eps, vals, res) > threshold
		}
	})
}

// medianResidual returns the normalized residual of (i, j), 0 when the
// neighbourhood holds no valid sample.
func medianResidual(m *grid.Dense, i, j int, eps float64, vals, res []float64) float64 {
	w, ci, cj, err := m.Window(i, j, 1)
	if err != nil {
		return 0
	}
	vals = vals[:0]
	w.Do(func(wi, wj int, v float64) bool {
		if (wi != ci || wj != cj) && !math.IsNaN(v) {
			vals = append(vals, v)
		}
		return true
	})
	if len(vals) == 0 {
		return 0
	}
	cm := grid.Median(vals)
	res = res[:0]
	for _, v := range vals {
		res = append(res, math.Abs(v-cm))
	}
	rm := grid.Median(res)
	c0, _ := m.At(i, j)

	return math.Abs(c0-cm) / (rm + eps)
}

// GlobalStd rejects vectors whose u or v lies outside mean ± k·std of the
// frame's valid vectors. A vector is valid when both components are, so
// the statistics cover exactly the vectors that are tested.
// Errors: ErrEmptyDataset; ErrBadParameter for k ≤ 0.
func (ds *Dataset) GlobalStd(k float64, opts ...Option) (*Dataset, Report, error) {
	const op = "GlobalStd"
	if isNonFinite(k) || k <= 0 {
		return nil, Report{}, fieldErrorf(op, ErrBadParameter)
	}

	return ds.reject(op, opts, func(f Frame) rejectFunc {
		us, vs := validVectors(f)
		mu, su := stat.PopMeanStdDev(us, nil)
		mv, sv := stat.PopMeanStdDev(vs, nil)
		return func(f Frame, i, j int) bool {
			u, _ := f.U.At(i, j)
			v, _ := f.V.At(i, j)
			return math.Abs(u-mu) > k*su || math.Abs(v-mv) > k*sv
		}
	})
}

// validVectors collects u and v of the vectors with both components present.
func validVectors(f Frame) (us, vs []float64) {
	u, v := f.U.Raw(), f.V.Raw()
	us = make([]float64, 0, len(u))
	vs = make([]float64, 0, len(v))
	for idx := range u {
		if math.IsNaN(u[idx]) || math.IsNaN(v[idx]) {
			continue
		}
		us = append(us, u[idx])
		vs = append(vs, v[idx])
	}
	return us, vs
}

// CHCMask rejects vectors whose quality flag fails valid. Frames without
// CHC are left untouched.
// Errors: ErrEmptyDataset; ErrBadParameter when valid is nil.
func (ds *Dataset) CHCMask(valid func(chc float64) bool, opts ...Option) (*Dataset, Report, error) {
	const op = "CHCMask"
	if valid == nil {
		return nil, Report{}, fieldErrorf(op, ErrBadParameter)
	}

	return ds.reject(op, opts, func(Frame) rejectFunc {
		return func(f Frame, i, j int) bool {
			if f.CHC == nil {
				return false
			}
			c, _ := f.CHC.At(i, j)
			return !valid(c)
		}
	})
}

// PositiveCHC is the Insight convention: a vector is valid when CHC > 0.
func PositiveCHC(chc float64) bool { return chc > 0 }

// reject runs a frame-local test over every valid vector and masks the
// rejected ones in U and V. Decisions are taken on the input frame, so a
// rejection never influences its neighbours within the same pass.
func (ds *Dataset) reject(op string, opts []Option, prepare func(f Frame) rejectFunc) (*Dataset, Report, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, Report{}, fieldErrorf(op, ErrEmptyDataset)
	}
	o := gatherOptions(opts...)
	checked := make([]int, ds.Len())
	rejected := make([]int, ds.Len())

	frames, err := mapFrames(ds.Frames, o, op, func(k int, f Frame) (Frame, error) {
		test := prepare(f)
		out := f.Clone()
		out.W = nil
		rows, cols := f.U.Shape()
		u, v := f.U.Raw(), f.V.Raw()
		ou, ov := out.U.Raw(), out.V.Raw()
		var i, j, idx int
		for i = 0; i < rows; i++ {
			for j = 0; j < cols; j++ {
				idx = i*cols + j
				if math.IsNaN(u[idx]) || math.IsNaN(v[idx]) {
					continue
				}
				checked[k]++
				if test(f, i, j) {
					ou[idx], ov[idx] = math.NaN(), math.NaN()
					rejected[k]++
				}
			}
		}
		return out, nil
	})
	if err != nil {
		return nil, Report{}, err
	}

	rep := Report{PerFrame: rejected}
	for k := range checked {
		rep.Checked += checked[k]
		rep.Rejected += rejected[k]
	}
	out := ds.withFrames(frames)
	out.Scalar = ""
	o.debug("field: validation", "op", op, "checked", rep.Checked, "rejected", rep.Rejected)

	return out, rep, nil
}
