// Package regions treats a thresholded 2D field as a grid of cells and
// extracts its connected regions.
//
// What:
//
//   - Mask marks the cells of a grid.Dense whose value (or |value|) exceeds a
//     Threshold; NaN cells are never marked.
//   - ConnectedComponents groups marked cells under 4- or 8-connectivity.
//   - Labels renders the components as a label image (0 = background).
//
// Why:
//
//   - Vortex cores: |Γ2| > 2/π cells grouped into one region per vortex.
//   - Outlier clusters: contiguous rejected vectors after validation.
//
// Complexity:
//
//   - FromGrid: O(W×H); ConnectedComponents: O(W×H×d), d = 4 or 8.
//
// Errors:
//
//   - ErrEmptyGrid: input has no rows or no columns.
//   - ErrNonRectangular: ragged boolean input.
//   - ErrComponentIndex: requested component index out of range.
package regions
