// SPDX-License-Identifier: MIT

package field

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDataset is returned when a dataset has no frames.
	ErrEmptyDataset = errors.New("field: dataset has no frames")

	// ErrShapeMismatch indicates grids that do not match the coordinate axes
	// or each other.
	ErrShapeMismatch = errors.New("field: grid shape does not match coordinates")

	// ErrCoordsMismatch indicates two datasets sampled on different grids.
	ErrCoordsMismatch = errors.New("field: coordinates differ")

	// ErrFrameCount indicates two datasets with a different number of frames.
	ErrFrameCount = errors.New("field: frame counts differ")

	// ErrFrameIndex indicates a frame index outside [0, Len()).
	ErrFrameIndex = errors.New("field: frame index out of range")

	// ErrUnknownProperty is returned by Vec2Scal for an unsupported property.
	ErrUnknownProperty = errors.New("field: unknown scalar property")

	// ErrEmptySelection is returned when a crop window selects no samples.
	ErrEmptySelection = errors.New("field: selection is empty")

	// ErrBadParameter reports a non-finite or out-of-domain numeric argument.
	ErrBadParameter = errors.New("field: invalid parameter")

	// ErrNoScalar is returned when an operation needs W and no frame has it.
	ErrNoScalar = errors.New("field: dataset has no derived scalar")
)

// fieldErrorf wraps err with an operation tag.
func fieldErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
