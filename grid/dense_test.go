package grid_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlpiv/grid"
)

// TestNewDense_Errors verifies shape validation of the constructors.
func TestNewDense_Errors(t *testing.T) {
	cases := []struct {
		name       string
		rows, cols int
	}{
		{"ZeroRows", 0, 3},
		{"ZeroCols", 3, 0},
		{"Negative", -1, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.NewDense(tc.rows, tc.cols)
			assert.ErrorIs(t, err, grid.ErrInvalidDimensions)
		})
	}

	_, err := grid.NewDenseFrom(2, 2, []float64{1, 2, 3})
	assert.ErrorIs(t, err, grid.ErrDimensionMismatch)

	_, err = grid.NewDenseFrom(1, 2, []float64{1, math.Inf(1)})
	assert.ErrorIs(t, err, grid.ErrNonFinite)
}

// TestDense_AtSet covers bounds, NaN acceptance and Inf rejection.
func TestDense_AtSet(t *testing.T) {
	m, err := grid.NewDense(2, 3)
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)

	require.NoError(t, m.Set(1, 2, 4.5))
	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)

	require.NoError(t, m.Set(0, 0, math.NaN()), "NaN marks a masked vector")
	assert.ErrorIs(t, m.Set(0, 1, math.Inf(-1)), grid.ErrNonFinite)

	_, err = m.At(2, 0)
	assert.ErrorIs(t, err, grid.ErrOutOfRange)
	assert.ErrorIs(t, m.Set(0, -1, 1), grid.ErrOutOfRange)

	inf, err := grid.NewDense(1, 1, grid.WithAllowInf())
	require.NoError(t, err)
	assert.NoError(t, inf.Set(0, 0, math.Inf(1)))
}

// TestDense_CloneIndependent checks that Clone owns its buffer.
func TestDense_CloneIndependent(t *testing.T) {
	m, err := grid.Full(2, 2, 1)
	require.NoError(t, err)
	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, 9))

	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v)
	assert.Equal(t, "[1, 1]\n[1, 1]\n", m.String())
}

// TestDense_ViewWriteThrough verifies that views share storage with the base grid.
func TestDense_ViewWriteThrough(t *testing.T) {
	m, err := grid.NewDenseFrom(3, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	})
	require.NoError(t, err)

	v, err := m.View(1, 1, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 8, 9}, v.Values())

	require.NoError(t, v.Set(0, 0, 50))
	got, _ := m.At(1, 1)
	assert.Equal(t, 50.0, got)

	_, err = m.View(2, 2, 2, 2)
	assert.ErrorIs(t, err, grid.ErrBadShape)
}

// TestDense_WindowClipsAtBorder checks the moving-window helper.
func TestDense_WindowClipsAtBorder(t *testing.T) {
	m, err := grid.NewDense(4, 5)
	require.NoError(t, err)

	w, ci, cj, err := m.Window(0, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, w.Rows())
	assert.Equal(t, 2, w.Cols())
	assert.Equal(t, 0, ci)
	assert.Equal(t, 0, cj)

	w, ci, cj, err = m.Window(2, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, w.Rows())
	assert.Equal(t, 3, w.Cols())
	assert.Equal(t, 1, ci)
	assert.Equal(t, 1, cj)
	r0, c0 := w.Origin()
	assert.Equal(t, 1, r0)
	assert.Equal(t, 1, c0)

	_, _, _, err = m.Window(9, 0, 1)
	assert.ErrorIs(t, err, grid.ErrOutOfRange)
}

// TestDense_ApplyDo covers the in-place map and the early-stopping visitor.
func TestDense_ApplyDo(t *testing.T) {
	m, err := grid.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.Apply(func(i, j int, _ float64) float64 { return float64(i*10 + j) }))
	assert.Equal(t, []float64{0, 1, 10, 11}, m.Raw())

	visited := 0
	m.Do(func(_, _ int, v float64) bool {
		visited++
		return v < 1
	})
	assert.Equal(t, 2, visited)

	err = m.Apply(func(_, _ int, _ float64) float64 { return math.Inf(1) })
	assert.ErrorIs(t, err, grid.ErrNonFinite)
}
