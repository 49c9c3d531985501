// SPDX-License-Identifier: MIT

package pivio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
)

var (
	reVariables = regexp.MustCompile(`(?i)VARIABLES\s*=\s*((?:"[^"]*"\s*,?\s*)+)`)
	reQuoted    = regexp.MustCompile(`"([^"]*)"`)
	reZoneI     = regexp.MustCompile(`(?i)\bI\s*=\s*(\d+)`)
	reZoneJ     = regexp.MustCompile(`(?i)\bJ\s*=\s*(\d+)`)
	reDeltaT    = regexp.MustCompile(`(?i)MicrosecondsPerDeltaT\s*=\s*"?([0-9.eE+-]+)`)
)

// vecHeader is the parsed Tecplot header of an Insight file.
type vecHeader struct {
	names  []string // lower-case variable names
	units  []string // unit per variable, "" when absent
	nx, ny int
	dt     float64 // seconds, 0 when absent
}

func parseVecHeader(text string) (vecHeader, error) {
	var h vecHeader
	vars := reVariables.FindStringSubmatch(text)
	zone := strings.Index(strings.ToUpper(text), "ZONE")
	if vars == nil || zone < 0 {
		return h, ErrBadHeader
	}
	for _, q := range reQuoted.FindAllStringSubmatch(vars[1], -1) {
		parts := strings.Fields(q[1])
		if len(parts) == 0 {
			continue
		}
		h.names = append(h.names, strings.ToLower(parts[0]))
		h.units = append(h.units, strings.Join(parts[1:], " "))
	}
	if len(h.names) < 4 {
		return h, ErrBadHeader
	}

	zi := reZoneI.FindStringSubmatch(text[zone:])
	zj := reZoneJ.FindStringSubmatch(text[zone:])
	if zi == nil || zj == nil {
		return h, ErrBadHeader
	}
	h.nx, _ = strconv.Atoi(zi[1])
	h.ny, _ = strconv.Atoi(zj[1])
	if h.nx < 1 || h.ny < 1 {
		return h, ErrBadHeader
	}
	if m := reDeltaT.FindStringSubmatch(text); m != nil {
		if us, err := strconv.ParseFloat(m[1], 64); err == nil && us > 0 {
			h.dt = us * 1e-6
		}
	}

	return h, nil
}

func (h vecHeader) attrs(name string) field.Attrs {
	a := field.DefaultAttrs()
	a.Variables = h.names
	if h.units[0] != "" {
		a.Units.Length = h.units[0]
	}
	if h.units[2] != "" {
		a.Units.Velocity = h.units[2]
		if tu := field.TimeUnit(h.units[2]); tu != "" {
			a.Units.Time = tu
		}
	}
	if h.dt > 0 {
		a.Dt = h.dt
	}
	if name != "" {
		a.Files = []string{name}
	}
	return a
}

// LoadVec reads an Insight .vec file.
func LoadVec(path string) (*field.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadVec(f, path)
}

// ReadVec parses an Insight .vec stream; name is recorded in Attrs.Files and
// error positions.
// MAIN DESCRIPTION:
//   - Header lines are accumulated up to the one holding ZONE.
//   - Rows: x, y, u, v[, chc] separated by commas and/or blanks; a missing
//     chc is 1.
//   - Coordinates come from the first row (X) and the first column (Y).
//
// Errors: ErrBadHeader, *ParseError (bad number or short row),
// ErrRowCount, field.ErrShapeMismatch for non-monotonic coordinates.
//
// Complexity: O(I·J).
func ReadVec(r io.Reader, name string) (*field.Dataset, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var header strings.Builder
	line := 0
	for sc.Scan() {
		line++
		header.WriteString(sc.Text())
		header.WriteByte(' ')
		if strings.Contains(strings.ToUpper(sc.Text()), "ZONE") {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	h, err := parseVecHeader(header.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	n := h.nx * h.ny
	x, y := make([]float64, h.nx), make([]float64, h.ny)
	u, _ := grid.NewDense(h.ny, h.nx)
	v, _ := grid.NewDense(h.ny, h.nx)
	chc, _ := grid.Full(h.ny, h.nx, 1)
	ur, vr, cr := u.Raw(), v.Raw(), chc.Raw()

	row := 0
	var vals [5]float64
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if row >= n {
			return nil, fmt.Errorf("%s: %w", name, ErrRowCount)
		}
		got, err := parseRow(text, vals[:])
		if err != nil {
			return nil, &ParseError{File: name, Line: line, Err: err}
		}
		if got < 4 {
			return nil, &ParseError{File: name, Line: line, Err: fmt.Errorf("want at least 4 columns, got %d", got)}
		}
		i, j := row/h.nx, row%h.nx
		if i == 0 {
			x[j] = vals[0]
		}
		if j == 0 {
			y[i] = vals[1]
		}
		ur[row], vr[row] = vals[2], vals[3]
		if got >= 5 {
			cr[row] = vals[4]
		}
		row++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if row != n {
		return nil, fmt.Errorf("%s: %w", name, ErrRowCount)
	}

	ds, err := field.New(x, y, []field.Frame{{U: u, V: v, CHC: chc}}, h.attrs(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ds, nil
}

// parseRow splits on commas and blanks and parses up to len(dst) numbers.
// It returns how many fields were parsed.
func parseRow(text string, dst []float64) (int, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == ';'
	})
	n := min(len(fields), len(dst))
	for k := 0; k < n; k++ {
		val, err := strconv.ParseFloat(fields[k], 64)
		if err != nil {
			return k, err
		}
		dst[k] = val
	}
	return n, nil
}

// WriteVec writes frame k of ds as an Insight .vec stream.
// Masked vectors are written as NaN; a missing CHC is written as 1.
func WriteVec(w io.Writer, ds *field.Dataset, k int) error {
	if k < 0 || k >= ds.Len() {
		return field.ErrFrameIndex
	}
	f := ds.Frames[k]
	rows, cols := ds.Shape()
	bw := bufio.NewWriter(w)

	title := "lvlpiv"
	if k < len(ds.Attrs.Files) {
		title = filepath.Base(ds.Attrs.Files[k])
	}
	lu, vu := ds.Attrs.Units.Length, ds.Attrs.Units.Velocity
	fmt.Fprintf(bw, `TITLE="%s" VARIABLES="X %s", "Y %s", "U %s", "V %s", "CHC",`, title, lu, lu, vu, vu)
	if ds.Attrs.Units.Time == "s" && ds.Attrs.Dt > 0 {
		fmt.Fprintf(bw, ` DATASETAUXDATA MicrosecondsPerDeltaT="%s"`, ff(ds.Attrs.Dt*1e6))
	}
	fmt.Fprintf(bw, " ZONE I=%d, J=%d, F=POINT\n", cols, rows)

	u, v := f.U.Raw(), f.V.Raw()
	var chc []float64
	if f.CHC != nil {
		chc = f.CHC.Raw()
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			idx := i*cols + j
			c := 1.0
			if chc != nil {
				c = chc[idx]
			}
			fmt.Fprintf(bw, "%s, %s, %s, %s, %s\n", ff(ds.X[j]), ff(ds.Y[i]), ff(u[idx]), ff(v[idx]), ff(c))
		}
	}
	return bw.Flush()
}

// ff formats a float with the shortest exact representation.
func ff(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
