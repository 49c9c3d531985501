// SPDX-License-Identifier: MIT

package pivio

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// Format names a file format.
type Format string

// Supported formats.
const (
	FormatVec     Format = "vec"
	FormatOpenPIV Format = "openpiv"
	FormatVTK     Format = "vtk"
	FormatMeta    Format = "meta"
	FormatAuto    Format = "auto"
)

// ParseFormat resolves a user-facing name ("vec", "txt", "openpiv", "vtk",
// "meta", "yaml", "auto"; case-insensitive).
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "vec", "insight":
		return FormatVec, nil
	case "txt", "openpiv":
		return FormatOpenPIV, nil
	case "vtk":
		return FormatVTK, nil
	case "meta", "yaml", "yml":
		return FormatMeta, nil
	case "", "auto":
		return FormatAuto, nil
	}
	return "", ErrUnknownFormat
}

// Ext returns the file extension written for f.
func (f Format) Ext() string {
	switch f {
	case FormatVec:
		return ".vec"
	case FormatOpenPIV:
		return ".txt"
	case FormatVTK:
		return ".vtk"
	case FormatMeta:
		return ".yaml"
	}
	return ""
}

// formatOf guesses a reader from a file extension. Extensions without a
// reader report false.
func formatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vec":
		return FormatVec, true
	case ".txt":
		return FormatOpenPIV, true
	}
	return "", false
}

// Option customizes LoadDirectory and Save.
type Option func(*options)

type options struct {
	workers int
	logger  *slog.Logger
	format  Format
	dt      float64 // 0 keeps the dt read from the files
}

func gatherOptions(opts ...Option) options {
	o := options{workers: runtime.GOMAXPROCS(0), format: FormatAuto}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o options) debug(msg string, args ...any) {
	if o.logger != nil {
		o.logger.Debug(msg, args...)
	}
}

// WithWorkers bounds the number of files processed concurrently.
// Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("pivio: WithWorkers(n<1)")
	}
	return func(o *options) { o.workers = n }
}

// WithLogger reports each file at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFormat forces the reader instead of guessing from the extension.
// Panics on FormatVTK and FormatMeta, which are write-only.
func WithFormat(f Format) Option {
	if f == FormatVTK || f == FormatMeta {
		panic("pivio: WithFormat: " + string(f) + " cannot be read")
	}
	return func(o *options) { o.format = f }
}

// WithDt sets the time between files. Panics if dt <= 0.
func WithDt(dt float64) Option {
	if dt <= 0 {
		panic("pivio: WithDt(dt<=0)")
	}
	return func(o *options) { o.dt = dt }
}
