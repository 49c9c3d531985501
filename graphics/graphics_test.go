package graphics_test

import (
	"bytes"
	"image/gif"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/graphics"
	"github.com/katalvlaran/lvlpiv/sample"
)

func small() graphics.Options {
	o := graphics.DefaultOptions()
	o.Width, o.Height = 2*vg.Inch, 1.5*vg.Inch
	return o
}

func TestQuiver(t *testing.T) {
	ds, err := sample.Dataset(2)
	require.NoError(t, err)

	opts := small()
	opts.Title = "frame"
	opts.Units = true
	opts.NthArr = 2
	opts.Threshold = 5
	p, err := graphics.Quiver(ds, 1, opts)
	require.NoError(t, err)
	assert.Equal(t, "frame", p.Title.Text)
	assert.Equal(t, "x [pix]", p.X.Label.Text)
	assert.Equal(t, "y [pix]", p.Y.Label.Text)

	path := filepath.Join(t.TempDir(), "quiver.png")
	require.NoError(t, graphics.Save(p, path, opts.Width, opts.Height))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("\x89PNG")))
}

func TestQuiver_MaskedAndAtRest(t *testing.T) {
	ds, err := sample.Field(sample.WithRows(3), sample.WithCols(3))
	require.NoError(t, err)
	require.NoError(t, ds.Frames[0].U.Fill(0))
	require.NoError(t, ds.Frames[0].V.Fill(0))
	require.NoError(t, ds.Frames[0].U.Set(1, 1, math.NaN()))

	p, err := graphics.Quiver(ds, 0, small())
	require.NoError(t, err)
	require.NoError(t, graphics.Save(p, filepath.Join(t.TempDir(), "rest.png"), 2*vg.Inch, 2*vg.Inch))
}

func TestQuiver_Errors(t *testing.T) {
	ds, err := sample.Field()
	require.NoError(t, err)

	_, err = graphics.Quiver(nil, 0, small())
	assert.ErrorIs(t, err, graphics.ErrNilDataset)

	_, err = graphics.Quiver(ds, 1, small())
	assert.ErrorIs(t, err, field.ErrFrameIndex)

	bad := small()
	bad.NthArr = 0
	_, err = graphics.Quiver(ds, 0, bad)
	assert.ErrorIs(t, err, graphics.ErrBadOptions)
}

func TestContourf(t *testing.T) {
	ds, err := sample.LambOseen(sample.WithRows(11), sample.WithCols(11))
	require.NoError(t, err)

	_, err = graphics.Contourf(ds, 0, small())
	require.ErrorIs(t, err, field.ErrNoScalar)

	vort, err := ds.Vec2Scal(field.PropVorticity)
	require.NoError(t, err)
	opts := small()
	opts.Lines = 4
	p, err := graphics.Contourf(vort, 0, opts)
	require.NoError(t, err)
	assert.Equal(t, field.PropVorticity, p.Title.Text)
	require.NoError(t, graphics.Save(p, filepath.Join(t.TempDir(), "vort.svg"), opts.Width, opts.Height))

	opts.Threshold = 1e-3
	p, err = graphics.Contourf(vort, 0, opts)
	require.NoError(t, err)
	require.NoError(t, graphics.Save(p, filepath.Join(t.TempDir(), "capped.png"), opts.Width, opts.Height))
}

func TestShowScal(t *testing.T) {
	ds, err := sample.LambOseen(sample.WithRows(9), sample.WithCols(9))
	require.NoError(t, err)

	opts := small()
	opts.ContourLevels = 0.05
	opts.Title = "ω"
	p, err := graphics.ShowScal(ds, "curl", 0, opts)
	require.NoError(t, err)
	assert.Equal(t, "ω", p.Title.Text)

	_, err = graphics.ShowScal(ds, "pressure", 0, opts)
	assert.ErrorIs(t, err, field.ErrUnknownProperty)
}

func TestAnimate(t *testing.T) {
	ds, err := sample.Dataset(3, sample.WithRows(4), sample.WithCols(5))
	require.NoError(t, err)

	var buf bytes.Buffer
	opts := small()
	require.NoError(t, graphics.Animate(&buf, ds, opts))

	anim, err := gif.DecodeAll(&buf)
	require.NoError(t, err)
	require.Len(t, anim.Image, 3)
	assert.Equal(t, []int{opts.Delay, opts.Delay, opts.Delay}, anim.Delay)
	assert.Equal(t, anim.Image[0].Bounds(), anim.Image[2].Bounds())
	assert.Positive(t, anim.Image[0].Bounds().Dx())

	assert.ErrorIs(t, graphics.Animate(&buf, nil, opts), graphics.ErrNilDataset)
}

// TestFrames numbers the frames from 1/N to N/N.
func TestFrames(t *testing.T) {
	ds, err := sample.Dataset(5, sample.WithRows(4), sample.WithCols(5))
	require.NoError(t, err)

	plots, err := graphics.Frames(ds, small())
	require.NoError(t, err)
	require.Len(t, plots, 5)
	assert.Equal(t, "1/5", plots[0].Title.Text)
	assert.Equal(t, "3/5", plots[2].Title.Text)
	assert.Equal(t, "5/5", plots[4].Title.Text)

	bad := small()
	bad.Delay = -1
	_, err = graphics.Frames(ds, bad)
	assert.ErrorIs(t, err, graphics.ErrBadOptions)
}

func TestSave_BadInput(t *testing.T) {
	assert.ErrorIs(t, graphics.Save(nil, "x.png", vg.Inch, vg.Inch), graphics.ErrBadOptions)
}
