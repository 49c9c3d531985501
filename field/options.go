// SPDX-License-Identifier: MIT

// Package field: functional options shared by frame-wise operations.
package field

import (
	"context"
	"log/slog"
	"runtime"
)

const (
	// DefaultCoordTolerance is the absolute tolerance used when comparing axes.
	DefaultCoordTolerance = 1e-9

	// DefaultMedianThreshold is the normalized median test rejection level.
	DefaultMedianThreshold = 2.0

	// DefaultMedianEps is the residual floor of the median test (velocity units).
	DefaultMedianEps = 0.1
)

const (
	panicWorkers = "field: WithWorkers: n must be > 0"
	panicCtx     = "field: WithContext(nil)"
)

// Option customizes frame-wise operations.
type Option func(*options)

type options struct {
	ctx     context.Context
	workers int
	logger  *slog.Logger
}

// WithWorkers bounds the number of frames processed concurrently.
// Panics when n ≤ 0.
func WithWorkers(n int) Option {
	if n <= 0 {
		panic(panicWorkers)
	}
	return func(o *options) { o.workers = n }
}

// WithContext sets the context observed between frames. Panics on nil.
func WithContext(ctx context.Context) Option {
	if ctx == nil {
		panic(panicCtx)
	}
	return func(o *options) { o.ctx = ctx }
}

// WithLogger enables debug logging of operations. nil keeps them silent.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func gatherOptions(opts ...Option) options {
	o := options{
		ctx:     context.Background(),
		workers: runtime.GOMAXPROCS(0),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o options) debug(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}
