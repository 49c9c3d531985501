// SPDX-License-Identifier: MIT

package pivio

import (
	"errors"
	"fmt"
)

var (
	// ErrBadHeader is returned when a .vec header lacks VARIABLES or ZONE I/J.
	ErrBadHeader = errors.New("pivio: malformed header")

	// ErrNoFiles is returned when a directory pattern matches no readable file.
	ErrNoFiles = errors.New("pivio: no files match")

	// ErrUnknownFormat is returned for an unsupported format name.
	ErrUnknownFormat = errors.New("pivio: unknown format")

	// ErrRowCount is returned when a .vec body does not hold I·J rows.
	ErrRowCount = errors.New("pivio: row count does not match zone size")
)

// ParseError locates a malformed data row.
type ParseError struct {
	File string
	Line int // 1-based
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pivio: %s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
