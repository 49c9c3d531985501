// SPDX-License-Identifier: MIT

package graphics

import (
	"gonum.org/v1/plot/vg"
)

// Defaults used by DefaultOptions.
const (
	DefaultColors = 64
	DefaultDelay  = 20 // GIF frame delay, 1/100 s
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
)

// Options tunes the rendering of Quiver, Contourf, ShowScal and Animate.
// The zero value of a float field disables the feature it controls.
type Options struct {
	// Threshold clips vector magnitudes (Quiver, Animate) and scalar values
	// (Contourf) above it; 0 disables clipping.
	Threshold float64
	// NthArr draws every n-th arrow along both axes.
	NthArr int
	// ContourLevels is the upper end of the colour scale; for Contourf the
	// scale runs over ±ContourLevels. 0 selects the data maximum.
	ContourLevels float64
	// Units appends the dataset units to the axis labels.
	Units bool
	// Title is the plot title. Animate overrides it with "k/N".
	Title string
	// Lines is the number of contour lines drawn over Contourf (0 for none).
	Lines int
	// Colors is the palette size.
	Colors int
	// Width and Height size the images rendered by Save and Animate.
	Width, Height vg.Length
	// Delay is the GIF frame delay in hundredths of a second.
	Delay int
}

// DefaultOptions returns every arrow, a 64-colour palette, a 6×4 inch canvas
// and a 0.2 s frame delay.
func DefaultOptions() Options {
	return Options{
		NthArr: 1,
		Colors: DefaultColors,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Delay:  DefaultDelay,
	}
}

func (o Options) validate() error {
	if o.NthArr < 1 || o.Colors < 2 || o.Width <= 0 || o.Height <= 0 || o.Delay < 0 {
		return ErrBadOptions
	}
	if o.Threshold < 0 || o.ContourLevels < 0 || o.Lines < 0 {
		return ErrBadOptions
	}
	return nil
}
