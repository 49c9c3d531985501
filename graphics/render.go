// SPDX-License-Identifier: MIT

package graphics

import (
	"fmt"
	"image"
	"image/color/palette"
	imgdraw "image/draw"
	"image/gif"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
)

const (
	opSave    = "Save"
	opAnimate = "Animate"
	opFrames  = "Frames"
)

// Save renders p into path at w×h. The format follows the file extension
// (png, jpg, svg, pdf, eps, tif).
func Save(p *plot.Plot, path string, w, h vg.Length) error {
	if p == nil || w <= 0 || h <= 0 {
		return graphicsErrorf(opSave, ErrBadOptions)
	}
	if err := p.Save(w, h, path); err != nil {
		return graphicsErrorf(opSave, err)
	}
	return nil
}

// Frames builds one quiver plot per frame of ds. Every plot shares the
// colour scale of the whole series and is titled "k/N" with the one-based
// frame number k, from "1/N" to "N/N".
//
// Errors:
//   - ErrNilDataset; ErrBadOptions.
//
// Complexity: O(N·r·c).
func Frames(ds *field.Dataset, opts Options) ([]*plot.Plot, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, graphicsErrorf(opFrames, ErrNilDataset)
	}
	if err := opts.validate(); err != nil {
		return nil, graphicsErrorf(opFrames, err)
	}

	mags := make([]*grid.Dense, ds.Len())
	var peak float64
	for k, f := range ds.Frames {
		mag, err := grid.Hypot(f.U, f.V)
		if err != nil {
			return nil, graphicsErrorf(opFrames, err)
		}
		if opts.Threshold > 0 {
			if mag, err = grid.Clip(mag, 0, opts.Threshold); err != nil {
				return nil, graphicsErrorf(opFrames, err)
			}
		}
		if m := grid.NaNMax(mag); m > peak {
			peak = m
		}
		mags[k] = mag
	}
	lim := colourLimit(opts.ContourLevels, peak)

	plots := make([]*plot.Plot, ds.Len())
	for k, f := range ds.Frames {
		o := opts
		o.Title = frameTitle(k, ds.Len())
		plots[k] = quiverPlot(ds, f, mags[k], lim, o)
	}
	return plots, nil
}

// Animate writes the Frames of ds into w as an animated GIF, one image
// per frame, each shown for opts.Delay hundredths of a second.
//
// Errors:
//   - ErrNilDataset; ErrBadOptions; write errors from w.
//
// Complexity: O(N·(r·c + pixels)), one rasterisation per frame.
func Animate(w io.Writer, ds *field.Dataset, opts Options) error {
	plots, err := Frames(ds, opts)
	if err != nil {
		return err
	}

	anim := &gif.GIF{}
	for _, p := range plots {
		anim.Image = append(anim.Image, rasterize(p, opts.Width, opts.Height))
		anim.Delay = append(anim.Delay, opts.Delay)
	}
	if err := gif.EncodeAll(w, anim); err != nil {
		return graphicsErrorf(opAnimate, err)
	}
	return nil
}

func frameTitle(k, n int) string { return fmt.Sprintf("%d/%d", k+1, n) }

// rasterize draws p on an RGBA canvas and dithers it to the Plan 9 palette.
func rasterize(p *plot.Plot, w, h vg.Length) *image.Paletted {
	c := vgimg.New(w, h)
	p.Draw(draw.New(c))
	src := c.Image()
	b := src.Bounds()
	dst := image.NewPaletted(b, palette.Plan9)
	imgdraw.FloydSteinberg.Draw(dst, b, src, b.Min)
	return dst
}
