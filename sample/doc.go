// Package sample builds synthetic PIV datasets for tests, examples and
// benchmarks.
//
// Field and Dataset reproduce the classic ramp sample: on x = 32, 64, ...
// and y = 16, 32, ... frame k carries
//
//	u = 1 + k + ramp(0 → 7 along x)
//	v = ramp(−1 → 1 along y)
//	chc = 1
//
// optionally perturbed by seeded Gaussian noise (WithNoise, WithSeed).
// LambOseen builds a single Lamb–Oseen vortex on a unit grid, the reference
// case for the Γ1/Γ2 vortex criteria.
//
// All builders are deterministic for a given option set.
package sample
