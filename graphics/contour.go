// SPDX-License-Identifier: MIT

package graphics

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
)

const (
	opContourf = "Contourf"
	opShowScal = "ShowScal"
)

// Contourf plots the scalar W of frame k on a blue-red diverging colour map
// centred on zero. The scale spans ±ContourLevels, or ±max|W| when
// ContourLevels is 0. Threshold > 0 caps W at that value before the scale
// is chosen. Lines > 0 overlays that many evenly spaced contour lines
// inside the scale.
//
// Errors:
//   - ErrNilDataset; ErrBadOptions; field.ErrFrameIndex;
//   - field.ErrNoScalar when the frame carries no W.
func Contourf(ds *field.Dataset, k int, opts Options) (*plot.Plot, error) {
	f, err := frameOf(opContourf, ds, k, opts)
	if err != nil {
		return nil, err
	}
	if f.W == nil {
		return nil, graphicsErrorf(opContourf, field.ErrNoScalar)
	}
	w, err := capScalar(f.W, opts.Threshold)
	if err != nil {
		return nil, graphicsErrorf(opContourf, err)
	}
	lim := colourLimit(opts.ContourLevels, grid.NaNAbsMax(w))

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = ds.Scalar
	}
	labelAxes(p, ds, opts.Units)

	pal := moreland.SmoothBlueRed().Palette(opts.Colors)
	p.Add(heatMap(scalarGrid{x: ds.X, y: ds.Y, z: w}, pal, -lim, lim))

	if opts.Lines > 0 && len(ds.X) > 1 && len(ds.Y) > 1 {
		// contouring does not tolerate holes
		filled, err := grid.ReplaceNaN(w, 0)
		if err != nil {
			return nil, graphicsErrorf(opContourf, err)
		}
		c := plotter.NewContour(scalarGrid{x: ds.X, y: ds.Y, z: filled}, contourLevels(lim, opts.Lines), nil)
		c.Min, c.Max = -lim, lim
		p.Add(c)
	}
	return p, nil
}

// capScalar replaces values above threshold by threshold; 0 keeps w.
func capScalar(w *grid.Dense, threshold float64) (*grid.Dense, error) {
	if threshold <= 0 {
		return w, nil
	}
	return grid.Clip(w, -math.MaxFloat64, threshold)
}

// contourLevels splits (-lim, lim) into n+1 equal bands and returns the n
// interior boundaries.
func contourLevels(lim float64, n int) []float64 {
	levels := make([]float64, n)
	step := 2 * lim / float64(n+1)
	for i := range levels {
		levels[i] = -lim + step*float64(i+1)
	}
	return levels
}

// ShowScal derives property with Vec2Scal and plots frame k of the result
// with Contourf. The property name titles the plot unless opts.Title is set.
func ShowScal(ds *field.Dataset, property string, k int, opts Options) (*plot.Plot, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, graphicsErrorf(opShowScal, ErrNilDataset)
	}
	scal, err := ds.Vec2Scal(property)
	if err != nil {
		return nil, graphicsErrorf(opShowScal, err)
	}
	return Contourf(scal, k, opts)
}
