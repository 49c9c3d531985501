// SPDX-License-Identifier: MIT

// Package grid: sentinel error set.
// All kernels return these sentinels (possibly wrapped with an operation tag)
// and tests match them via errors.Is. Kernels never panic on user data.
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested grid dimensions are non-positive.
	ErrInvalidDimensions = errors.New("grid: dimensions must be > 0")

	// ErrOutOfRange indicates that a row or column index is outside valid bounds.
	ErrOutOfRange = errors.New("grid: index out of range")

	// ErrDimensionMismatch indicates incompatible shapes between operands.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")

	// ErrNilGrid indicates that a nil *Dense was used as receiver or argument.
	ErrNilGrid = errors.New("grid: nil grid")

	// ErrNonFinite signals ±Inf where the numeric policy requires finite values
	// (NaN is legal: it marks a masked vector).
	ErrNonFinite = errors.New("grid: Inf encountered")

	// ErrBadShape is returned for invalid windows or kernel sizes.
	ErrBadShape = errors.New("grid: invalid shape")

	// ErrBadCoordinates indicates a coordinate axis whose length does not match
	// the grid or whose values are not strictly monotonic.
	ErrBadCoordinates = errors.New("grid: invalid coordinate axis")
)

// gridErrorf wraps an underlying error with the given operation tag.
func gridErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
