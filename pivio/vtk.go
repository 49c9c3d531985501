// SPDX-License-Identifier: MIT

package pivio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/lvlpiv/field"
)

// WriteVTK writes frame k as a legacy binary VTK rectilinear grid
// (big-endian float32) with point data VECTORS velocity (u, v, 0),
// SCALARS chc when present and SCALARS <ds.Scalar> when W is present.
// Masked vectors stay NaN.
func WriteVTK(w io.Writer, ds *field.Dataset, k int) error {
	if k < 0 || k >= ds.Len() {
		return field.ErrFrameIndex
	}
	f := ds.Frames[k]
	rows, cols := ds.Shape()
	bw := bufio.NewWriter(w)
	be := binary.BigEndian

	fmt.Fprint(bw, "# vtk DataFile Version 3.0\n")
	fmt.Fprintf(bw, "lvlpiv frame %d/%d t=%s\n", k+1, ds.Len(), ff(f.T))
	fmt.Fprint(bw, "BINARY\nDATASET RECTILINEAR_GRID\n")
	fmt.Fprintf(bw, "DIMENSIONS %d %d 1\n", cols, rows)

	writeAxis := func(tag string, vals []float64) error {
		fmt.Fprintf(bw, "%s %d float\n", tag, len(vals))
		for _, v := range vals {
			if err := binary.Write(bw, be, float32(v)); err != nil {
				return err
			}
		}
		_, err := bw.WriteString("\n")
		return err
	}
	if err := writeAxis("X_COORDINATES", ds.X); err != nil {
		return err
	}
	if err := writeAxis("Y_COORDINATES", ds.Y); err != nil {
		return err
	}
	if err := writeAxis("Z_COORDINATES", []float64{0}); err != nil {
		return err
	}

	fmt.Fprintf(bw, "POINT_DATA %d\nVECTORS velocity float\n", rows*cols)
	u, v := f.U.Raw(), f.V.Raw()
	for idx := range u {
		if err := binary.Write(bw, be, [3]float32{float32(u[idx]), float32(v[idx]), 0}); err != nil {
			return err
		}
	}
	bw.WriteString("\n")

	writeScalar := func(name string, vals []float64) error {
		fmt.Fprintf(bw, "SCALARS %s float 1\nLOOKUP_TABLE default\n", name)
		for _, v := range vals {
			if err := binary.Write(bw, be, float32(v)); err != nil {
				return err
			}
		}
		_, err := bw.WriteString("\n")
		return err
	}
	if f.CHC != nil {
		if err := writeScalar("chc", f.CHC.Raw()); err != nil {
			return err
		}
	}
	if f.W != nil {
		name := strings.ReplaceAll(ds.Scalar, " ", "_")
		if name == "" {
			name = "w"
		}
		if err := writeScalar(name, f.W.Raw()); err != nil {
			return err
		}
	}

	return bw.Flush()
}
