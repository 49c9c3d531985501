// SPDX-License-Identifier: MIT

package vortex

import (
	"log/slog"
	"math"
	"runtime"

	"github.com/katalvlaran/lvlpiv/regions"
)

// CoreThreshold is the |Γ2| level above which the flow is locally dominated
// by rotation.
var CoreThreshold = 2 / math.Pi

// Option customizes Gamma1, Gamma2 and Detect.
type Option func(*options)

type options struct {
	workers   int
	logger    *slog.Logger
	threshold float64
	minCells  int
	conn      regions.Connectivity
}

func gatherOptions(opts ...Option) options {
	o := options{
		workers:   runtime.GOMAXPROCS(0),
		threshold: CoreThreshold,
		minCells:  1,
		conn:      regions.Conn8,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// WithWorkers bounds the number of rows computed concurrently. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("vortex: WithWorkers(n<1)")
	}
	return func(o *options) { o.workers = n }
}

// WithLogger reports progress at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithThreshold overrides the |Γ2| core level used by Detect.
// Panics unless 0 < t < 1.
func WithThreshold(t float64) Option {
	if !(t > 0 && t < 1) {
		panic("vortex: WithThreshold(t) requires 0 < t < 1")
	}
	return func(o *options) { o.threshold = t }
}

// WithMinCells drops detected cores smaller than n cells. Panics if n < 1.
func WithMinCells(n int) Option {
	if n < 1 {
		panic("vortex: WithMinCells(n<1)")
	}
	return func(o *options) { o.minCells = n }
}

// WithConnectivity selects how core cells are joined (default Conn8).
func WithConnectivity(c regions.Connectivity) Option {
	return func(o *options) { o.conn = c }
}
