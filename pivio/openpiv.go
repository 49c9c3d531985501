// SPDX-License-Identifier: MIT

package pivio

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
)

// LoadOpenPIV reads an OpenPIV text file.
func LoadOpenPIV(path string) (*field.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadOpenPIV(f, path)
}

// ReadOpenPIV parses whitespace-separated columns x y u v [flags] [mask].
// The grid is rebuilt from the sorted unique coordinates; points absent from
// the file and vectors with a non-zero flag or mask are NaN and get CHC 0.
//
// Errors: *ParseError for malformed rows, field.ErrEmptyDataset when the
// file holds no rows.
//
// Complexity: O(N log N) for N rows.
func ReadOpenPIV(r io.Reader, name string) (*field.Dataset, error) {
	type point struct{ x, y, u, v, flag, mask float64 }

	var pts []point
	sc := bufio.NewScanner(r)
	line := 0
	var vals [6]float64
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		vals = [6]float64{}
		got, err := parseRow(text, vals[:])
		if err != nil {
			return nil, &ParseError{File: name, Line: line, Err: err}
		}
		if got < 4 {
			return nil, &ParseError{File: name, Line: line, Err: fmt.Errorf("want at least 4 columns, got %d", got)}
		}
		pts = append(pts, point{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("%s: %w", name, field.ErrEmptyDataset)
	}

	xs, ys := make([]float64, len(pts)), make([]float64, len(pts))
	for k, p := range pts {
		xs[k], ys[k] = p.x, p.y
	}
	x, y := uniqueSorted(xs), uniqueSorted(ys)
	rows, cols := len(y), len(x)

	u, err := grid.NaNs(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	v, _ := grid.NaNs(rows, cols)
	chc, _ := grid.NewDense(rows, cols)
	ur, vr, cr := u.Raw(), v.Raw(), chc.Raw()
	for _, p := range pts {
		idx := sort.SearchFloat64s(y, p.y)*cols + sort.SearchFloat64s(x, p.x)
		if p.flag != 0 || p.mask != 0 || math.IsNaN(p.u) || math.IsNaN(p.v) {
			continue
		}
		ur[idx], vr[idx], cr[idx] = p.u, p.v, 1
	}

	attrs := field.DefaultAttrs()
	attrs.Variables = []string{"x", "y", "u", "v", "flags", "mask"}
	attrs.Files = []string{name}
	ds, err := field.New(x, y, []field.Frame{{U: u, V: v, CHC: chc}}, attrs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ds, nil
}

// uniqueSorted sorts vals in place and drops exact duplicates.
func uniqueSorted(vals []float64) []float64 {
	sort.Float64s(vals)
	out := vals[:0]
	for k, v := range vals {
		if k == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// WriteOpenPIV writes frame k as OpenPIV columns x y u v flags mask, x
// varying fastest. Masked vectors get flags = 1.
func WriteOpenPIV(w io.Writer, ds *field.Dataset, k int) error {
	if k < 0 || k >= ds.Len() {
		return field.ErrFrameIndex
	}
	f := ds.Frames[k]
	rows, cols := ds.Shape()
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# x y u v flags mask")

	u, v := f.U.Raw(), f.V.Raw()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			idx := i*cols + j
			flag := 0
			uu, vv := u[idx], v[idx]
			if math.IsNaN(uu) || math.IsNaN(vv) {
				flag, uu, vv = 1, 0, 0
			}
			fmt.Fprintf(bw, "%s\t%s\t%s\t%s\t%d\t0\n", ff(ds.X[j]), ff(ds.Y[i]), ff(uu), ff(vv), flag)
		}
	}
	return bw.Flush()
}
