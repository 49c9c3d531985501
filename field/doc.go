// Package field models PIV vector-field datasets and the post-processing
// applied to them.
//
// A Dataset is a time series of Frames sampled on one rectilinear grid:
//
//	X  []float64  column coordinates (len == Cols)
//	Y  []float64  row coordinates    (len == Rows)
//	Frames[k].U, V   velocity components        (*grid.Dense, Rows×Cols)
//	Frames[k].CHC    instrument quality flag    (optional)
//	Frames[k].W      derived scalar, e.g. vorticity (nil until computed)
//
// Masked (invalid) vectors are NaN in U and V.
//
// Operations never mutate their receiver; they return a new Dataset:
//
//   - Geometry: Pan, Crop, SetScale, SetDt, SetTUnits, Select.
//   - Arithmetic: Add, Sub (frame by frame, coordinates must agree).
//   - Statistics over time: Average, Fluctuations, ReynoldsStress, RMS.
//   - Derived scalars: Vec2Scal (vorticity, kinetic energy, tke,
//     divergence, strain, shear, acceleration), Magnitude.
//   - Cleaning: MedianTest, GlobalStd, CHCMask, FillNaNs, Filter.
//
// Frame-wise work runs on a bounded errgroup (WithWorkers) and honours
// cancellation of the context passed WithContext.
package field
