// SPDX-License-Identifier: MIT

package field

import (
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvlpiv/grid"
)

// Units names the physical units of a dataset.
type Units struct {
	Length   string `yaml:"length"`   // coordinate unit, e.g. "mm"
	Velocity string `yaml:"velocity"` // velocity unit, e.g. "m/s"
	Time     string `yaml:"time"`     // time unit, e.g. "s" or "dt"
}

// Attrs carries dataset metadata.
type Attrs struct {
	Variables []string `yaml:"variables"` // column names as written by the instrument
	Units     Units    `yaml:"units"`
	Dt        float64  `yaml:"dt"`    // time between frames
	Files     []string `yaml:"files"` // source files, in frame order
}

// DefaultAttrs returns the metadata of an unlabelled dataset: variables
// x, y, u, v, chc, pixel/dt units and Dt = 1.
func DefaultAttrs() Attrs {
	return Attrs{
		Variables: []string{"x", "y", "u", "v", "chc"},
		Units:     Units{Length: "pix", Velocity: "pix/dt", Time: "dt"},
		Dt:        1,
	}
}

func (a Attrs) clone() Attrs {
	a.Variables = append([]string(nil), a.Variables...)
	a.Files = append([]string(nil), a.Files...)
	return a
}

// TimeUnit extracts the denominator of a velocity unit ("m/s" -> "s").
func TimeUnit(velocity string) string {
	if i := strings.LastIndexByte(velocity, '/'); i >= 0 {
		return velocity[i+1:]
	}
	return ""
}

// Frame is one snapshot of the vector field.
type Frame struct {
	T   float64     // acquisition time
	U   *grid.Dense // x velocity component
	V   *grid.Dense // y velocity component
	CHC *grid.Dense // quality flag, may be nil
	W   *grid.Dense // derived scalar, nil until computed
}

// Clone deep-copies every present grid.
func (f Frame) Clone() Frame {
	return Frame{T: f.T, U: cloneOrNil(f.U), V: cloneOrNil(f.V), CHC: cloneOrNil(f.CHC), W: cloneOrNil(f.W)}
}

func cloneOrNil(m *grid.Dense) *grid.Dense {
	if m == nil {
		return nil
	}
	return m.Clone()
}

// Dataset is a time series of frames on one rectilinear grid.
type Dataset struct {
	X      []float64 // column coordinates
	Y      []float64 // row coordinates
	Frames []Frame
	Attrs  Attrs
	Scalar string // name of the scalar stored in W, empty when none
}

// New validates and assembles a dataset. The slices are used as given.
//
// Invariants:
//   - at least one frame;
//   - X and Y strictly monotonic, len(X) == Cols, len(Y) == Rows;
//   - U, V (and CHC, W when present) share that shape in every frame.
//
// Errors: ErrEmptyDataset; ErrShapeMismatch for axis or grid violations.
func New(x, y []float64, frames []Frame, attrs Attrs) (*Dataset, error) {
	ds := &Dataset{X: x, Y: y, Frames: frames, Attrs: attrs}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return ds, nil
}

// Validate checks the dataset invariants (see New).
func (ds *Dataset) Validate() error {
	if ds == nil || len(ds.Frames) == 0 {
		return ErrEmptyDataset
	}
	if err := grid.ValidateAxis(ds.X, len(ds.X)); err != nil || len(ds.X) == 0 {
		return fieldErrorf("x axis", ErrShapeMismatch)
	}
	if err := grid.ValidateAxis(ds.Y, len(ds.Y)); err != nil || len(ds.Y) == 0 {
		return fieldErrorf("y axis", ErrShapeMismatch)
	}
	rows, cols := len(ds.Y), len(ds.X)
	for k, f := range ds.Frames {
		for _, m := range []*grid.Dense{f.U, f.V} {
			if m == nil || m.Rows() != rows || m.Cols() != cols {
				return fieldErrorf("frame "+strconv.Itoa(k), ErrShapeMismatch)
			}
		}
		for _, m := range []*grid.Dense{f.CHC, f.W} {
			if m != nil && (m.Rows() != rows || m.Cols() != cols) {
				return fieldErrorf("frame "+strconv.Itoa(k), ErrShapeMismatch)
			}
		}
	}
	return nil
}

// Len returns the number of frames.
func (ds *Dataset) Len() int { return len(ds.Frames) }

// Shape returns (rows, cols) = (len(Y), len(X)).
func (ds *Dataset) Shape() (rows, cols int) { return len(ds.Y), len(ds.X) }

// Clone deep-copies the dataset.
func (ds *Dataset) Clone() *Dataset {
	frames := make([]Frame, len(ds.Frames))
	for k, f := range ds.Frames {
		frames[k] = f.Clone()
	}
	return &Dataset{
		X:      append([]float64(nil), ds.X...),
		Y:      append([]float64(nil), ds.Y...),
		Frames: frames,
		Attrs:  ds.Attrs.clone(),
		Scalar: ds.Scalar,
	}
}

// withFrames wraps frames with copies of the coordinates and attrs of ds.
func (ds *Dataset) withFrames(frames []Frame) *Dataset {
	return &Dataset{
		X:      append([]float64(nil), ds.X...),
		Y:      append([]float64(nil), ds.Y...),
		Frames: frames,
		Attrs:  ds.Attrs.clone(),
		Scalar: ds.Scalar,
	}
}

// Select returns a single-frame dataset holding a copy of frame k.
func (ds *Dataset) Select(k int) (*Dataset, error) {
	if ds.empty() {
		return nil, fieldErrorf("Select", ErrEmptyDataset)
	}
	if k < 0 || k >= len(ds.Frames) {
		return nil, fieldErrorf("Select", ErrFrameIndex)
	}
	out := ds.withFrames([]Frame{ds.Frames[k].Clone()})
	if k < len(ds.Attrs.Files) {
		out.Attrs.Files = []string{ds.Attrs.Files[k]}
	}
	return out, nil
}

// empty reports a nil dataset or one without frames.
func (ds *Dataset) empty() bool { return ds == nil || len(ds.Frames) == 0 }

// HasScalar reports whether every frame carries W.
func (ds *Dataset) HasScalar() bool {
	if len(ds.Frames) == 0 {
		return false
	}
	for _, f := range ds.Frames {
		if f.W == nil {
			return false
		}
	}
	return true
}

// Concat joins datasets sampled on the same grid along time. Frames keep
// their T; files are concatenated.
func Concat(parts ...*Dataset) (*Dataset, error) {
	if len(parts) == 0 || parts[0] == nil {
		return nil, fieldErrorf("Concat", ErrEmptyDataset)
	}
	out := parts[0].Clone()
	for _, p := range parts[1:] {
		if p == nil {
			return nil, fieldErrorf("Concat", ErrEmptyDataset)
		}
		if !sameAxes(out, p, DefaultCoordTolerance) {
			return nil, fieldErrorf("Concat", ErrCoordsMismatch)
		}
		for _, f := range p.Frames {
			out.Frames = append(out.Frames, f.Clone())
		}
		out.Attrs.Files = append(out.Attrs.Files, p.Attrs.Files...)
	}
	if !out.HasScalar() {
		out.Scalar = ""
	}
	return out, nil
}

func sameAxes(a, b *Dataset, tol float64) bool {
	return closeSlices(a.X, b.X, tol) && closeSlices(a.Y, b.Y, tol)
}

func closeSlices(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
