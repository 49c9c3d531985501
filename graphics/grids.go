// SPDX-License-Identifier: MIT

package graphics

import (
	"math"

	"gonum.org/v1/plot/plotter"

	"github.com/katalvlaran/lvlpiv/grid"
)

// scalarGrid exposes a grid on dataset axes as a plotter.GridXYZ.
// plotter indexes (column, row); grid.Dense indexes (row, column).
type scalarGrid struct {
	x, y []float64
	z    *grid.Dense
}

func (g scalarGrid) Dims() (c, r int) { return len(g.x), len(g.y) }
func (g scalarGrid) X(c int) float64  { return g.x[c] }
func (g scalarGrid) Y(r int) float64  { return g.y[r] }

func (g scalarGrid) Z(c, r int) float64 {
	v, err := g.z.At(r, c)
	if err != nil {
		return math.NaN()
	}
	return v
}

// arrowGrid exposes every stride-th vector as a plotter.FieldXY. Masked
// vectors become zero, which plotter.Field leaves undrawn.
type arrowGrid struct {
	x, y   []float64
	u, v   *grid.Dense
	stride int
	clip   float64
}

func newArrowGrid(x, y []float64, u, v *grid.Dense, stride int, clip float64) arrowGrid {
	return arrowGrid{x: x, y: y, u: u, v: v, stride: stride, clip: clip}
}

func (g arrowGrid) Dims() (c, r int) {
	return (len(g.x) + g.stride - 1) / g.stride, (len(g.y) + g.stride - 1) / g.stride
}

func (g arrowGrid) X(c int) float64 { return g.x[c*g.stride] }
func (g arrowGrid) Y(r int) float64 { return g.y[r*g.stride] }

func (g arrowGrid) Vector(c, r int) plotter.XY {
	u, _ := g.u.At(r*g.stride, c*g.stride)
	v, _ := g.v.At(r*g.stride, c*g.stride)
	if math.IsNaN(u) || math.IsNaN(v) || math.IsInf(u, 0) || math.IsInf(v, 0) {
		return plotter.XY{}
	}
	if g.clip > 0 {
		if m := math.Hypot(u, v); m > g.clip {
			u, v = u*g.clip/m, v*g.clip/m
		}
	}
	return plotter.XY{X: u, Y: v}
}

// longest returns the largest drawn arrow, 0 when every arrow is zero.
func (g arrowGrid) longest() float64 {
	var best float64
	c, r := g.Dims()
	var i, j int
	for i = 0; i < c; i++ {
		for j = 0; j < r; j++ {
			xy := g.Vector(i, j)
			best = math.Max(best, math.Hypot(xy.X, xy.Y))
		}
	}
	return best
}
