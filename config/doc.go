// Package config describes a post-processing pipeline in YAML.
//
// A Pipeline lists what cmd/pivpost does to a directory of vector files:
// which files to read, the unit and geometry transforms, the outlier tests,
// the derived quantities and what to write. Load starts from Default, decodes
// the file over it (unknown keys are rejected) and validates the result.
//
//	input:
//	  dir: ./run01
//	  pattern: "*.vec"
//	validate:
//	  median_threshold: 2
//	fill_nans: 10
//	scalar: vorticity
//	output:
//	  dir: ./out
//	  formats: [vec, vtk, meta]
//	  plot: true
package config
