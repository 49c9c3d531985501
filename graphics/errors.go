// SPDX-License-Identifier: MIT

package graphics

import (
	"errors"
	"fmt"
)

var (
	// ErrNilDataset is returned for a nil or empty dataset.
	ErrNilDataset = errors.New("graphics: dataset is nil or empty")

	// ErrBadOptions is returned for non-positive sizes, strides or delays.
	ErrBadOptions = errors.New("graphics: invalid options")
)

func graphicsErrorf(op string, err error) error {
	return fmt.Errorf("graphics.%s: %w", op, err)
}
