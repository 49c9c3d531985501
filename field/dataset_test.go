package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
)

// TestNew_Invariants covers the dataset validation rules.
func TestNew_Invariants(t *testing.T) {
	u, err := grid.NewDense(2, 3)
	require.NoError(t, err)
	v, err := grid.NewDense(2, 3)
	require.NoError(t, err)
	frame := field.Frame{U: u, V: v}

	_, err = field.New([]float64{0, 1, 2}, []float64{0, 1}, nil, field.DefaultAttrs())
	assert.ErrorIs(t, err, field.ErrEmptyDataset)

	_, err = field.New([]float64{0, 1}, []float64{0, 1}, []field.Frame{frame}, field.DefaultAttrs())
	assert.ErrorIs(t, err, field.ErrShapeMismatch, "len(X) != cols")

	_, err = field.New([]float64{0, 2, 1}, []float64{0, 1}, []field.Frame{frame}, field.DefaultAttrs())
	assert.ErrorIs(t, err, field.ErrShapeMismatch, "non-monotonic X")

	small, _ := grid.NewDense(1, 1)
	_, err = field.New([]float64{0, 1, 2}, []float64{0, 1}, []field.Frame{{U: u, V: v, CHC: small}}, field.DefaultAttrs())
	assert.ErrorIs(t, err, field.ErrShapeMismatch, "CHC shape")

	ds, err := field.New([]float64{0, 1, 2}, []float64{1, 0}, []field.Frame{frame}, field.DefaultAttrs())
	require.NoError(t, err, "decreasing Y is legal")
	assert.Equal(t, 1, ds.Len())
}

// TestSelectConcat checks frame selection and concatenation along time.
func TestSelectConcat(t *testing.T) {
	ds := ramp(t, 3)
	ds.Attrs.Files = []string{"a.vec", "b.vec", "c.vec"}

	one, err := ds.Select(1)
	require.NoError(t, err)
	assert.Equal(t, 1, one.Len())
	assert.Equal(t, []string{"b.vec"}, one.Attrs.Files)
	assert.Equal(t, 2.0, at(t, one.Frames[0].U, 0, 0))

	set(t, one.Frames[0].U, 0, 0, 42)
	assert.Equal(t, 2.0, at(t, ds.Frames[1].U, 0, 0), "Select copies")

	_, err = ds.Select(3)
	assert.ErrorIs(t, err, field.ErrFrameIndex)

	joined, err := field.Concat(ds, one)
	require.NoError(t, err)
	assert.Equal(t, 4, joined.Len())
	assert.Equal(t, []string{"a.vec", "b.vec", "c.vec", "b.vec"}, joined.Attrs.Files)

	moved, err := ds.Pan(1, 0)
	require.NoError(t, err)
	_, err = field.Concat(ds, moved)
	assert.ErrorIs(t, err, field.ErrCoordsMismatch)
}

// TestTimeUnit extracts the denominator of a velocity unit.
func TestTimeUnit(t *testing.T) {
	assert.Equal(t, "s", field.TimeUnit("m/s"))
	assert.Equal(t, "dt", field.TimeUnit("pix/dt"))
	assert.Equal(t, "", field.TimeUnit("m"))
}
