// SPDX-License-Identifier: MIT

// Package grid: functional options for construction policy and filters.
//
// Design goals:
//   - Deterministic behavior: no global state.
//   - Safe by construction: option constructors panic only on nonsensical
//     values (programmer error); kernels return errors.
package grid

// Defaults (single source of truth).
const (
	// DefaultAllowInf keeps ±Inf out of grids unless explicitly enabled.
	DefaultAllowInf = false

	// DefaultTruncate is the Gaussian kernel half-width in units of sigma,
	// matching scipy.ndimage.gaussian_filter.
	DefaultTruncate = 4.0

	// DefaultBoundary mirrors samples at the border (scipy "reflect").
	DefaultBoundary = Reflect

	// DefaultCloseEps is the coordinate tolerance used by shape checks.
	DefaultCloseEps = 1e-9
)

const (
	panicTruncateInvalid = "grid: WithTruncate: truncate must be finite and > 0"
	panicBoundaryInvalid = "grid: WithBoundary: unknown boundary mode"
)

// Boundary selects how filters sample outside the grid.
type Boundary int

const (
	// Reflect mirrors about the edge including the edge sample: d c b a | a b c d | d c b a.
	Reflect Boundary = iota
	// Nearest repeats the edge sample: a a a a | a b c d | d d d d.
	Nearest
	// Skip ignores out-of-grid taps and renormalizes the kernel.
	Skip
)

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*options)

type options struct {
	allowInf bool     // accept ±Inf on Set/Apply
	truncate float64  // Gaussian half-width in sigmas
	boundary Boundary // filter edge policy
}

// WithAllowInf lets Set and Apply store ±Inf in the created grid.
func WithAllowInf() Option {
	return func(o *options) { o.allowInf = true }
}

// WithTruncate sets the Gaussian kernel half-width in units of sigma.
// Panics when t is not finite or t ≤ 0.
func WithTruncate(t float64) Option {
	if isNonFinite(t) || t <= 0 {
		panic(panicTruncateInvalid)
	}

	return func(o *options) { o.truncate = t }
}

// WithBoundary selects the filter edge policy.
// Panics on an unknown mode.
func WithBoundary(b Boundary) Option {
	if b != Reflect && b != Nearest && b != Skip {
		panic(panicBoundaryInvalid)
	}

	return func(o *options) { o.boundary = b }
}

// gatherOptions applies opts over the documented defaults, last wins.
// Complexity: O(len(opts)).
func gatherOptions(opts ...Option) options {
	o := options{
		allowInf: DefaultAllowInf,
		truncate: DefaultTruncate,
		boundary: DefaultBoundary,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
