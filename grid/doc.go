// Package grid offers the 2D scalar arrays every vector-field component in
// lvlpiv is stored in.
//
// What:
//
//   - Dense: a row-major float64 grid (rows = y samples, cols = x samples)
//     with bounds-checked At/Set, no-copy windows (View) and in-place maps.
//   - Element-wise kernels: Add, Sub, Scale, Hadamard, Hypot, Clip,
//     ReplaceNaN, AllClose.
//   - NaN-aware statistics: NaNMean, NaNStd, NaNMedian, NaNMin, NaNMax,
//     CountValid.
//   - Spatial derivatives: Gradient with numpy-compatible semantics on
//     (possibly non-uniform) coordinate axes.
//   - Smoothing: GaussianFilter and MedianFilter, both NaN-aware.
//
// Numeric policy:
//
//	NaN is a legal value and means "masked / invalid vector". PIV software
//	writes NaN (or a rejected flag) wherever the correlation failed, so every
//	kernel here either propagates NaN (arithmetic) or skips it (statistics,
//	filters). ±Inf is never a measurement: Set and Apply reject it unless the
//	grid was created WithAllowInf.
//
// Errors:
//
//   - ErrInvalidDimensions: rows or cols ≤ 0.
//   - ErrOutOfRange: index outside the grid.
//   - ErrDimensionMismatch: operands of different shapes.
//   - ErrNilGrid: nil operand.
//   - ErrNonFinite: ±Inf where finite values are required.
//   - ErrBadShape: invalid window or kernel size.
//   - ErrBadCoordinates: coordinate axis not matching the shape or not
//     strictly monotonic.
//
// Complexity:
//
//   - At/Set/View: O(1); element-wise kernels and statistics: O(r·c).
//   - Gradient: O(r·c); GaussianFilter: O(r·c·k) with k = 2·⌈truncate·σ⌉+1.
//   - MedianFilter: O(r·c·s²·log s) for window size s.
package grid
