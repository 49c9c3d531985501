// SPDX-License-Identifier: MIT

package field

import (
	"math"

	"github.com/katalvlaran/lvlpiv/grid"
)

// Names stored in Dataset.Scalar by the time statistics.
const (
	ScalarReynoldsStress = "reynolds_stress"
	ScalarRMS            = "rms"
)

// Average returns a single-frame dataset holding the NaN-aware mean over
// frames of U, V, CHC and (when every frame has it) W. The frame time is 0.
// A vector is masked in the result only when it is masked in every frame.
//
// Complexity: O(T·r·c).
func (ds *Dataset) Average() (*Dataset, error) {
	const op = "Average"
	if ds == nil || ds.Len() == 0 {
		return nil, fieldErrorf(op, ErrEmptyDataset)
	}
	mean, err := meanFrame(ds)
	if err != nil {
		return nil, fieldErrorf(op, err)
	}
	out := ds.withFrames([]Frame{mean})
	if mean.W == nil {
		out.Scalar = ""
	}

	return out, nil
}

func meanFrame(ds *Dataset) (Frame, error) {
	n := ds.Len()
	us, vs := make([]*grid.Dense, n), make([]*grid.Dense, n)
	var chcs, ws []*grid.Dense
	for k, f := range ds.Frames {
		us[k], vs[k] = f.U, f.V
		if f.CHC != nil {
			chcs = append(chcs, f.CHC)
		}
		if f.W != nil {
			ws = append(ws, f.W)
		}
	}

	var (
		mean Frame
		err  error
	)
	if mean.U, err = grid.MeanOf(us...); err != nil {
		return Frame{}, err
	}
	if mean.V, err = grid.MeanOf(vs...); err != nil {
		return Frame{}, err
	}
	if len(chcs) == n {
		if mean.CHC, err = grid.MeanOf(chcs...); err != nil {
			return Frame{}, err
		}
	}
	if len(ws) == n {
		if mean.W, err = grid.MeanOf(ws...); err != nil {
			return Frame{}, err
		}
	}

	return mean, nil
}

// Fluctuations subtracts the time average from every frame:
// u' = u − ⟨u⟩, v' = v − ⟨v⟩. W is dropped; CHC and T are kept.
func (ds *Dataset) Fluctuations(opts ...Option) (*Dataset, error) {
	const op = "Fluctuations"
	if ds == nil || ds.Len() == 0 {
		return nil, fieldErrorf(op, ErrEmptyDataset)
	}
	mean, err := meanFrame(ds)
	if err != nil {
		return nil, fieldErrorf(op, err)
	}
	frames, err := mapFrames(ds.Frames, gatherOptions(opts...), op, func(_ int, f Frame) (Frame, error) {
		out := Frame{T: f.T, CHC: cloneOrNil(f.CHC)}
		var err error
		if out.U, err = grid.Sub(f.U, mean.U); err != nil {
			return Frame{}, err
		}
		if out.V, err = grid.Sub(f.V, mean.V); err != nil {
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

// ReynoldsStress returns the average field with W = ⟨u'v'⟩, the NaN-aware
// time mean of the fluctuation product.
func (ds *Dataset) ReynoldsStress(opts ...Option) (*Dataset, error) {
	return ds.fluctuationMoment("ReynoldsStress", ScalarReynoldsStress,
		func(u, v float64) float64 { return u * v }, nil, opts...)
}

// RMS returns the average field with W = sqrt⟨u'² + v'²⟩.
func (ds *Dataset) RMS(opts ...Option) (*Dataset, error) {
	return ds.fluctuationMoment("RMS", ScalarRMS,
		func(u, v float64) float64 { return u*u + v*v }, math.Sqrt, opts...)
}

// fluctuationMoment averages kernel(u', v') over frames and applies post to
// the mean when given.
func (ds *Dataset) fluctuationMoment(op, name string, kernel func(u, v float64) float64, post func(float64) float64, opts ...Option) (*Dataset, error) {
	fl, err := ds.Fluctuations(opts...)
	if err != nil {
		return nil, fieldErrorf(op, err)
	}
	terms := make([]*grid.Dense, fl.Len())
	for k, f := range fl.Frames {
		if terms[k], err = grid.Zip(f.U, f.V, kernel); err != nil {
			return nil, fieldErrorf(op, err)
		}
	}
	w, err := grid.MeanOf(terms...)
	if err != nil {
		return nil, fieldErrorf(op, err)
	}
	if post != nil {
		if err = w.Apply(func(_, _ int, v float64) float64 { return post(v) }); err != nil {
			return nil, fieldErrorf(op, err)
		}
	}
	mean, err := meanFrame(ds)
	if err != nil {
		return nil, fieldErrorf(op, err)
	}
	mean.W = w
	out := ds.withFrames([]Frame{mean})
	out.Scalar = name

	return out, nil
}
