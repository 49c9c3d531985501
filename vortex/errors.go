// SPDX-License-Identifier: MIT

package vortex

import (
	"errors"
	"fmt"
)

var (
	// ErrBadWindow is returned for a window half-size n < 1.
	ErrBadWindow = errors.New("vortex: window half-size must be >= 1")

	// ErrNilDataset is returned for a nil or empty dataset.
	ErrNilDataset = errors.New("vortex: dataset is nil or empty")
)

func vortexErrorf(op string, err error) error {
	return fmt.Errorf("vortex.%s: %w", op, err)
}
