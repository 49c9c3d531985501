// Package lvlpiv is a toolkit for post-processing PIV (particle image
// velocimetry) vector fields: load them, clean them up, derive physical
// quantities and draw them.
//
// 🚀 What is lvlpiv?
//
//	A pure-Go library (plus the pivpost command) that brings together:
//		• Readers and writers: Insight .vec, OpenPIV .txt, VTK, YAML metadata
//		• Dataset operations: add, pan, crop, rescale, time average, fluctuations
//		• Validation: CHC masking, normalized median test, global std filter
//		• Derived scalars: vorticity, kinetic energy, TKE, strain, shear, ...
//		• Vortex identification: Γ1 / Γ2 and core detection
//		• Modal analysis: snapshot POD
//		• Graphics: quiver, filled contours, animated GIFs
//
// ✨ Why lvlpiv?
//
//   - Masked vectors are NaN everywhere, and every reduction skips them
//   - Operations return new datasets and never touch their receiver
//   - Frame-wise work runs on a bounded worker pool and honours contexts
//   - Errors are sentinels you can match with errors.Is
//
// Packages:
//
//	grid/     — NaN-aware 2D float grids, gradients and smoothing kernels
//	field/    — the Dataset type and everything done to it
//	regions/  — connected regions of thresholded grids
//	vortex/   — Γ1 / Γ2 criteria and vortex core detection
//	pod/      — proper orthogonal decomposition of fluctuations
//	pivio/    — file formats and directory loading
//	sample/   — synthetic datasets for tests and demos
//	graphics/ — gonum/plot rendering
//	config/   — YAML pipeline description
//	cmd/pivpost — the pipeline runner
//
// Quick start:
//
//	ds, _ := pivio.LoadDirectory(ctx, "run01", "*.vec")
//	ds, _, _ = ds.MedianTest(field.DefaultMedianThreshold, field.DefaultMedianEps)
//	vort, _ := ds.Vec2Scal("vorticity")
//	p, _ := graphics.Contourf(vort, 0, graphics.DefaultOptions())
//	_ = graphics.Save(p, "vorticity.png", 6*vg.Inch, 4*vg.Inch)
//
//	go get github.com/katalvlaran/lvlpiv
package lvlpiv
