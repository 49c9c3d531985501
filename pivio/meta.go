// SPDX-License-Identifier: MIT

package pivio

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlpiv/field"
)

// Meta is the YAML sidecar describing a dataset.
type Meta struct {
	Attrs  field.Attrs `yaml:"attrs"`
	Scalar string      `yaml:"scalar,omitempty"`
	Frames int         `yaml:"frames"`
	Times  []float64   `yaml:"times"`
	Rows   int         `yaml:"rows"`
	Cols   int         `yaml:"cols"`
	XRange []float64   `yaml:"x_range,flow"`
	YRange []float64   `yaml:"y_range,flow"`
}

// MetaOf summarizes ds.
func MetaOf(ds *field.Dataset) Meta {
	rows, cols := ds.Shape()
	m := Meta{
		Attrs:  ds.Attrs,
		Scalar: ds.Scalar,
		Frames: ds.Len(),
		Times:  make([]float64, ds.Len()),
		Rows:   rows,
		Cols:   cols,
	}
	for k, f := range ds.Frames {
		m.Times[k] = f.T
	}
	if cols > 0 {
		m.XRange = []float64{ds.X[0], ds.X[cols-1]}
	}
	if rows > 0 {
		m.YRange = []float64{ds.Y[0], ds.Y[rows-1]}
	}
	return m
}

// WriteMeta encodes MetaOf(ds) as YAML.
func WriteMeta(w io.Writer, ds *field.Dataset) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(MetaOf(ds)); err != nil {
		return fmt.Errorf("pivio: meta: %w", err)
	}
	return enc.Close()
}

// ReadMeta decodes a YAML sidecar.
func ReadMeta(r io.Reader) (Meta, error) {
	var m Meta
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return Meta{}, fmt.Errorf("pivio: meta: %w", err)
	}
	return m, nil
}
