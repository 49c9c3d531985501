// SPDX-License-Identifier: MIT

package vortex

import (
	"context"
	"math"
	"sort"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/regions"
)

// Vortex describes one detected vortex core.
type Vortex struct {
	Row, Col    int     // grid position of the centre (peak |Γ1|)
	X, Y        float64 // centre coordinates
	Sign        int     // +1 counter-clockwise, -1 clockwise
	Gamma1      float64 // Γ1 at the centre
	Cells       int     // core size in grid cells
	Area        float64 // core area in coordinate units²
	Circulation float64 // Σ ω·dA over the core
}

// Detect locates the vortex cores of frame k.
// MAIN DESCRIPTION:
//   - Stage 1: Γ1, Γ2 (window n) and vorticity of the frame.
//   - Stage 2: cells with |Γ2| above the threshold (default 2/π) are joined
//     into connected regions (8-connectivity by default).
//   - Stage 3: per region, the centre is the cell of largest |Γ1|, the
//     sign follows the mean Γ2, and circulation integrates vorticity over
//     the region with the mean cell area.
//
// Cores are returned largest first; equal sizes keep row-major seed order.
//
// Errors: ErrNilDataset, ErrBadWindow, field.ErrFrameIndex, ctx.Err().
func Detect(ctx context.Context, ds *field.Dataset, k, n int, opts ...Option) ([]Vortex, error) {
	const op = "Detect"
	if ds == nil || ds.Len() == 0 {
		return nil, vortexErrorf(op, ErrNilDataset)
	}
	frame, err := ds.Select(k)
	if err != nil {
		return nil, vortexErrorf(op, err)
	}
	g1, err := Gamma1(ctx, frame, n, opts...)
	if err != nil {
		return nil, err
	}
	g2, err := Gamma2(ctx, frame, n, opts...)
	if err != nil {
		return nil, err
	}
	vort, err := frame.Vec2Scal(field.PropVorticity, field.WithContext(ctx))
	if err != nil {
		return nil, vortexErrorf(op, err)
	}
	o := gatherOptions(opts...)

	gamma2 := g2.Frames[0].W
	mask, err := regions.FromGrid(gamma2, regions.Options{Threshold: o.threshold, Abs: true, Conn: o.conn})
	if err != nil {
		return nil, vortexErrorf(op, err)
	}

	gamma1, omega := g1.Frames[0].W.Raw(), vort.Frames[0].W.Raw()
	g2raw := gamma2.Raw()
	cell := spacing(ds.X) * spacing(ds.Y)

	var found []Vortex
	for _, reg := range mask.ConnectedComponents() {
		if reg.Area() < o.minCells {
			continue
		}
		best, mean, circ := reg.Seed, 0.0, 0.0
		for _, idx := range reg.Cells {
			if math.Abs(gamma1[idx]) > math.Abs(gamma1[best]) {
				best = idx
			}
			mean += g2raw[idx]
			if !math.IsNaN(omega[idx]) {
				circ += omega[idx] * cell
			}
		}
		col, row := mask.Coordinate(best)
		vx := Vortex{
			Row:         row,
			Col:         col,
			X:           ds.X[col],
			Y:           ds.Y[row],
			Sign:        1,
			Gamma1:      gamma1[best],
			Cells:       reg.Area(),
			Area:        float64(reg.Area()) * cell,
			Circulation: circ,
		}
		if mean < 0 {
			vx.Sign = -1
		}
		found = append(found, vx)
	}
	sort.SliceStable(found, func(a, b int) bool { return found[a].Cells > found[b].Cells })
	if o.logger != nil {
		o.logger.Debug("vortex: cores detected", "frame", k, "count", len(found))
	}

	return found, nil
}

// spacing returns the mean absolute step of an axis, 1 for a single sample.
func spacing(axis []float64) float64 {
	if len(axis) < 2 {
		return 1
	}
	return math.Abs(axis[len(axis)-1]-axis[0]) / float64(len(axis)-1)
}
