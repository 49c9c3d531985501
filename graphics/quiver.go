// SPDX-License-Identifier: MIT

package graphics

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
)

const opQuiver = "Quiver"

// Quiver plots frame k of ds: the velocity magnitude as a heat map with the
// velocity arrows drawn over it.
// MAIN DESCRIPTION:
//   - Colour scale runs from 0 to ContourLevels, or to the largest
//     (clipped) magnitude when ContourLevels is 0.
//   - Threshold clips magnitudes and arrow lengths above it.
//   - NthArr thins the arrows to every n-th column and row.
//
// Errors:
//   - ErrNilDataset; ErrBadOptions; field.ErrFrameIndex for k out of range.
func Quiver(ds *field.Dataset, k int, opts Options) (*plot.Plot, error) {
	f, err := frameOf(opQuiver, ds, k, opts)
	if err != nil {
		return nil, err
	}
	mag, err := grid.Hypot(f.U, f.V)
	if err != nil {
		return nil, graphicsErrorf(opQuiver, err)
	}
	if opts.Threshold > 0 {
		if mag, err = grid.Clip(mag, 0, opts.Threshold); err != nil {
			return nil, graphicsErrorf(opQuiver, err)
		}
	}
	return quiverPlot(ds, f, mag, colourLimit(opts.ContourLevels, grid.NaNMax(mag)), opts), nil
}

// quiverPlot assembles the heat map and arrows with a fixed colour limit so
// Animate can share one scale across frames.
func quiverPlot(ds *field.Dataset, f field.Frame, mag *grid.Dense, lim float64, opts Options) *plot.Plot {
	p := plot.New()
	p.Title.Text = opts.Title
	labelAxes(p, ds, opts.Units)

	pal := moreland.ExtendedBlackBody().Palette(opts.Colors)
	p.Add(heatMap(scalarGrid{x: ds.X, y: ds.Y, z: mag}, pal, 0, lim))

	arrows := newArrowGrid(ds.X, ds.Y, f.U, f.V, opts.NthArr, opts.Threshold)
	if arrows.longest() > 0 {
		fld := plotter.NewField(arrows)
		fld.LineStyle.Color = color.White
		p.Add(fld)
	}
	return p
}

// heatMap clips the colour scale to [lo, hi] and leaves masked cells blank.
func heatMap(g plotter.GridXYZ, pal palette.Palette, lo, hi float64) *plotter.HeatMap {
	hm := plotter.NewHeatMap(g, pal)
	hm.Min, hm.Max = lo, hi
	colours := pal.Colors()
	hm.Underflow = colours[0]
	hm.Overflow = colours[len(colours)-1]
	hm.NaN = color.Transparent
	return hm
}

// colourLimit picks the upper end of a colour scale: the requested level, or
// the data maximum, or 1 when the data carries no extent.
func colourLimit(requested, dataMax float64) float64 {
	if requested > 0 {
		return requested
	}
	if dataMax > 0 && !math.IsInf(dataMax, 0) {
		return dataMax
	}
	return 1
}

func labelAxes(p *plot.Plot, ds *field.Dataset, units bool) {
	p.X.Label.Text, p.Y.Label.Text = "x", "y"
	if units && ds.Attrs.Units.Length != "" {
		p.X.Label.Text = "x [" + ds.Attrs.Units.Length + "]"
		p.Y.Label.Text = "y [" + ds.Attrs.Units.Length + "]"
	}
}

func frameOf(op string, ds *field.Dataset, k int, opts Options) (field.Frame, error) {
	if ds == nil || ds.Len() == 0 {
		return field.Frame{}, graphicsErrorf(op, ErrNilDataset)
	}
	if err := opts.validate(); err != nil {
		return field.Frame{}, graphicsErrorf(op, err)
	}
	if k < 0 || k >= ds.Len() {
		return field.Frame{}, graphicsErrorf(op, field.ErrFrameIndex)
	}
	return ds.Frames[k], nil
}
