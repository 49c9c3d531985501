// SPDX-License-Identifier: MIT

package sample

import (
	"math/rand"
)

// Default geometry and physics of the builders.
const (
	DefaultRows        = 5
	DefaultCols        = 8
	DefaultVortexSize  = 21
	DefaultSeed        = 1
	DefaultDt          = 1.0
	DefaultCore        = 3.0
	DefaultCirculation = 1.0
)

// Option customizes a builder.
type Option func(*config)

type config struct {
	rows, cols  int // 0 selects the builder default
	rng         *rand.Rand
	noise       float64
	dt          float64
	core        float64
	circulation float64
	cx, cy      float64
	centered    bool // cx, cy set explicitly
}

func newConfig(opts ...Option) config {
	c := config{
		rng:         rand.New(rand.NewSource(DefaultSeed)),
		dt:          DefaultDt,
		core:        DefaultCore,
		circulation: DefaultCirculation,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&c)
		}
	}
	return c
}

func (c config) shape(rows, cols int) (int, int) {
	if c.rows > 0 {
		rows = c.rows
	}
	if c.cols > 0 {
		cols = c.cols
	}
	return rows, cols
}

// WithRows sets the number of y samples. Panics if n < 1.
func WithRows(n int) Option {
	if n < 1 {
		panic("sample: WithRows(n<1)")
	}
	return func(c *config) { c.rows = n }
}

// WithCols sets the number of x samples. Panics if n < 1.
func WithCols(n int) Option {
	if n < 1 {
		panic("sample: WithCols(n<1)")
	}
	return func(c *config) { c.cols = n }
}

// WithSeed reseeds the noise generator.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithNoise adds zero-mean Gaussian noise of standard deviation sigma to u
// and v. Panics if sigma < 0.
func WithNoise(sigma float64) Option {
	if sigma < 0 {
		panic("sample: WithNoise(sigma<0)")
	}
	return func(c *config) { c.noise = sigma }
}

// WithDt sets the time between frames. Panics if dt ≤ 0.
func WithDt(dt float64) Option {
	if dt <= 0 {
		panic("sample: WithDt(dt<=0)")
	}
	return func(c *config) { c.dt = dt }
}

// WithCore sets the Lamb–Oseen core radius (grid units). Panics if rc ≤ 0.
func WithCore(rc float64) Option {
	if rc <= 0 {
		panic("sample: WithCore(rc<=0)")
	}
	return func(c *config) { c.core = rc }
}

// WithCirculation sets the vortex circulation; its sign is the rotation
// sense (positive is counter-clockwise).
func WithCirculation(gamma float64) Option {
	return func(c *config) { c.circulation = gamma }
}

// WithCenter places the vortex centre. The default is the grid centre.
func WithCenter(x, y float64) Option {
	return func(c *config) { c.cx, c.cy, c.centered = x, y, true }
}
