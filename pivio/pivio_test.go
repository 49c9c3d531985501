package pivio_test

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
	"github.com/katalvlaran/lvlpiv/pivio"
	"github.com/katalvlaran/lvlpiv/sample"
)

const insightVec = `TITLE="E:\exp\Run000001.T000.D000.P000.H001.L.vec" VARIABLES="X mm", "Y mm", "U m/s", "V m/s", "CHC", DATASETAUXDATA Application="PIV" DATASETAUXDATA MicrosecondsPerDeltaT="2000.000000" ZONE I=3, J=2, F=POINT
0.31248, 0.5, 1.0, 0.1, 1
0.62496, 0.5, 2.0, 0.2, 1
0.93744, 0.5, 3.0, 0.3, -1
0.31248, 1.0, 4.0, 0.4, 1
0.62496, 1.0, 5.0, 0.5, 1
0.93744, 1.0, 6.0, 0.6, 1
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func at(t *testing.T, m *grid.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)
	return v
}

// TestLoadVec parses the Insight header and the POINT rows.
func TestLoadVec(t *testing.T) {
	path := writeTemp(t, "run.vec", insightVec)
	ds, err := pivio.LoadVec(path)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.31248, 0.62496, 0.93744}, ds.X)
	assert.Equal(t, []float64{0.5, 1.0}, ds.Y)
	assert.Equal(t, field.Units{Length: "mm", Velocity: "m/s", Time: "s"}, ds.Attrs.Units)
	assert.Equal(t, []string{"x", "y", "u", "v", "chc"}, ds.Attrs.Variables)
	assert.Equal(t, []string{path}, ds.Attrs.Files)
	assert.InDelta(t, 0.002, ds.Attrs.Dt, 1e-15)

	f := ds.Frames[0]
	assert.Equal(t, 6.0, at(t, f.U, 1, 2))
	assert.Equal(t, 0.2, at(t, f.V, 0, 1))
	assert.Equal(t, -1.0, at(t, f.CHC, 0, 2))

	moved, err := ds.Pan(1, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.31248, moved.X[0], 1e-12)
}

// TestReadVec_Errors covers header, row and count failures.
func TestReadVec_Errors(t *testing.T) {
	_, err := pivio.ReadVec(strings.NewReader("TITLE=\"x\" ZONE I=2, J=1\n1, 1, 1, 1\n"), "nohdr")
	assert.ErrorIs(t, err, pivio.ErrBadHeader)

	short := strings.Replace(insightVec, "0.93744, 1.0, 6.0, 0.6, 1\n", "", 1)
	_, err = pivio.ReadVec(strings.NewReader(short), "short")
	assert.ErrorIs(t, err, pivio.ErrRowCount)

	bad := strings.Replace(insightVec, "5.0", "five", 1)
	_, err = pivio.ReadVec(strings.NewReader(bad), "bad.vec")
	var pe *pivio.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "bad.vec", pe.File)
	assert.Equal(t, 6, pe.Line)

	_, err = pivio.LoadVec(filepath.Join(t.TempDir(), "missing.vec"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

// TestVec_RoundTrip writes and re-reads a frame with a masked vector.
func TestVec_RoundTrip(t *testing.T) {
	ds, err := pivio.ReadVec(strings.NewReader(insightVec), "in.vec")
	require.NoError(t, err)
	require.NoError(t, ds.Frames[0].U.Set(0, 0, math.NaN()))

	var buf bytes.Buffer
	require.NoError(t, pivio.WriteVec(&buf, ds, 0))
	back, err := pivio.ReadVec(&buf, "out.vec")
	require.NoError(t, err)

	assert.Equal(t, ds.X, back.X)
	assert.Equal(t, ds.Y, back.Y)
	assert.Equal(t, ds.Attrs.Units, back.Attrs.Units)
	assert.InDelta(t, ds.Attrs.Dt, back.Attrs.Dt, 1e-15)
	ok, err := grid.AllClose(ds.Frames[0].U, back.Frames[0].U, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.ErrorIs(t, pivio.WriteVec(&buf, ds, 1), field.ErrFrameIndex)
}

// TestOpenPIV reads flagged, masked and missing vectors as NaN.
func TestOpenPIV(t *testing.T) {
	const txt = `# x y u v flags mask
16 8 1.5 -0.5 0 0
32 8 2.5 -0.5 1 0
16 24 1.0 0.0 0 1
48 24 3.0 0.5
`
	ds, err := pivio.ReadOpenPIV(strings.NewReader(txt), "f.txt")
	require.NoError(t, err)
	assert.Equal(t, []float64{16, 32, 48}, ds.X)
	assert.Equal(t, []float64{8, 24}, ds.Y)

	f := ds.Frames[0]
	assert.Equal(t, 1.5, at(t, f.U, 0, 0))
	assert.True(t, math.IsNaN(at(t, f.U, 0, 1)), "flagged")
	assert.True(t, math.IsNaN(at(t, f.U, 1, 0)), "masked")
	assert.True(t, math.IsNaN(at(t, f.V, 0, 2)), "absent")
	assert.Equal(t, 3.0, at(t, f.U, 1, 2))
	assert.Equal(t, 0.0, at(t, f.CHC, 0, 1))
	assert.Equal(t, 1.0, at(t, f.CHC, 1, 2))

	var buf bytes.Buffer
	require.NoError(t, pivio.WriteOpenPIV(&buf, ds, 0))
	back, err := pivio.ReadOpenPIV(&buf, "back.txt")
	require.NoError(t, err)
	ok, err := grid.AllClose(f.U, back.Frames[0].U, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = pivio.ReadOpenPIV(strings.NewReader("# empty\n"), "e.txt")
	assert.ErrorIs(t, err, field.ErrEmptyDataset)
	_, err = pivio.ReadOpenPIV(strings.NewReader("1 2 3\n"), "s.txt")
	var pe *pivio.ParseError
	assert.True(t, errors.As(err, &pe))
}

// TestWriteVTK checks the legacy header and data sections.
func TestWriteVTK(t *testing.T) {
	ds, err := sample.Field()
	require.NoError(t, err)
	ds, err = ds.Vec2Scal("vorticity")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, pivio.WriteVTK(&buf, ds, 0))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# vtk DataFile Version 3.0\n"))
	for _, want := range []string{
		"BINARY\nDATASET RECTILINEAR_GRID\n",
		"DIMENSIONS 8 5 1\n",
		"X_COORDINATES 8 float\n",
		"POINT_DATA 40\nVECTORS velocity float\n",
		"SCALARS chc float 1\n",
		"SCALARS vorticity float 1\n",
	} {
		assert.Contains(t, out, want)
	}
	// 8+5+1 coordinates, 40 vectors of 3, two scalar fields of 40 float32 values
	assert.Greater(t, buf.Len(), 4*(14+120+80))
}

// TestMeta_RoundTrip encodes and decodes the YAML sidecar.
func TestMeta_RoundTrip(t *testing.T) {
	ds, err := sample.Dataset(2, sample.WithDt(0.25))
	require.NoError(t, err)
	ds.Attrs.Files = []string{"a.vec", "b.vec"}

	var buf bytes.Buffer
	require.NoError(t, pivio.WriteMeta(&buf, ds))
	assert.Contains(t, buf.String(), "velocity: pix/dt")

	m, err := pivio.ReadMeta(&buf)
	require.NoError(t, err)
	assert.Equal(t, pivio.MetaOf(ds), m)
	assert.Equal(t, []float64{0, 0.25}, m.Times)
	assert.Equal(t, []float64{32, 256}, m.XRange)
}

// TestSaveLoadDirectory writes a dataset and reads it back concurrently.
func TestSaveLoadDirectory(t *testing.T) {
	ds, err := sample.Dataset(3, sample.WithNoise(0.1))
	require.NoError(t, err)
	dir := t.TempDir()
	ctx := context.Background()

	paths, err := pivio.Save(ctx, dir, "run", ds, []pivio.Format{pivio.FormatVec, pivio.FormatOpenPIV, pivio.FormatVTK, pivio.FormatMeta}, pivio.WithWorkers(2))
	require.NoError(t, err)
	assert.Len(t, paths, 3*3+1)
	assert.FileExists(t, filepath.Join(dir, "run_0002.vec"))
	assert.FileExists(t, filepath.Join(dir, "run.yaml"))

	back, err := pivio.LoadDirectory(ctx, dir, "*.vec", pivio.WithDt(0.5))
	require.NoError(t, err)
	require.Equal(t, 3, back.Len())
	assert.Equal(t, 1.0, back.Frames[2].T)
	assert.Equal(t, 0.5, back.Attrs.Dt)
	assert.Equal(t, filepath.Join(dir, "run_0001.vec"), back.Attrs.Files[1])
	for k := range ds.Frames {
		ok, err := grid.AllClose(ds.Frames[k].U, back.Frames[k].U, 0, 0)
		require.NoError(t, err)
		assert.True(t, ok, "frame %d", k)
	}

	txt, err := pivio.LoadDirectory(ctx, dir, "*.txt", pivio.WithFormat(pivio.FormatOpenPIV))
	require.NoError(t, err)
	assert.Equal(t, 3, txt.Len())

	_, err = pivio.LoadDirectory(ctx, dir, "*.none")
	assert.ErrorIs(t, err, pivio.ErrNoFiles)

	_, err = pivio.Save(ctx, dir, "x", ds, []pivio.Format{"png"})
	assert.ErrorIs(t, err, pivio.ErrUnknownFormat)
}

// TestLoadDirectory_Mismatch rejects files on different grids.
func TestLoadDirectory_Mismatch(t *testing.T) {
	dir := t.TempDir()
	a, err := sample.Field()
	require.NoError(t, err)
	b, err := sample.Field(sample.WithCols(4))
	require.NoError(t, err)
	ctx := context.Background()
	_, err = pivio.Save(ctx, dir, "a", a, []pivio.Format{pivio.FormatVec})
	require.NoError(t, err)
	_, err = pivio.Save(ctx, dir, "b", b, []pivio.Format{pivio.FormatVec})
	require.NoError(t, err)

	_, err = pivio.LoadDirectory(ctx, dir, "*.vec")
	assert.ErrorIs(t, err, field.ErrCoordsMismatch)
}

// TestLoadDirectory_SkipsUnknown ignores files no reader understands when
// the format is guessed from the extension.
func TestLoadDirectory_SkipsUnknown(t *testing.T) {
	dir := t.TempDir()
	ds, err := sample.Dataset(2)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = pivio.Save(ctx, dir, "run", ds, []pivio.Format{pivio.FormatVec, pivio.FormatMeta})
	require.NoError(t, err)
	for name, body := range map[string]string{"README": "notes on run01\n", "cam.set": "[camera]\n"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	back, err := pivio.LoadDirectory(ctx, dir, "*")
	require.NoError(t, err)
	assert.Equal(t, 2, back.Len())
	assert.Equal(t, []string{filepath.Join(dir, "run_0000.vec"), filepath.Join(dir, "run_0001.vec")}, back.Attrs.Files)

	_, err = pivio.Load(filepath.Join(dir, "README"), pivio.FormatAuto)
	assert.ErrorIs(t, err, pivio.ErrUnknownFormat)

	_, err = pivio.LoadDirectory(ctx, dir, "*.set")
	assert.ErrorIs(t, err, pivio.ErrNoFiles)

	_, err = pivio.LoadDirectory(ctx, dir, "README", pivio.WithFormat(pivio.FormatOpenPIV))
	assert.Error(t, err)
}

// TestParseFormat maps user names onto formats.
func TestParseFormat(t *testing.T) {
	for name, want := range map[string]pivio.Format{
		"vec": pivio.FormatVec, "TXT": pivio.FormatOpenPIV, "vtk": pivio.FormatVTK,
		"yaml": pivio.FormatMeta, "": pivio.FormatAuto,
	} {
		got, err := pivio.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := pivio.ParseFormat("vc7")
	assert.ErrorIs(t, err, pivio.ErrUnknownFormat)
	assert.Panics(t, func() { pivio.WithFormat(pivio.FormatVTK) })
}
