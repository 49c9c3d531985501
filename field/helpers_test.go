package field_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
	"github.com/katalvlaran/lvlpiv/sample"
)

// uniform builds a single-frame rows×cols dataset with constant (u, v),
// CHC = 1 and unit-spaced coordinates.
func uniform(t testing.TB, rows, cols int, u, v float64) *field.Dataset {
	t.Helper()
	x := make([]float64, cols)
	for j := range x {
		x[j] = float64(j)
	}
	y := make([]float64, rows)
	for i := range y {
		y[i] = float64(i)
	}
	um, err := grid.Full(rows, cols, u)
	require.NoError(t, err)
	vm, err := grid.Full(rows, cols, v)
	require.NoError(t, err)
	chc, err := grid.Full(rows, cols, 1)
	require.NoError(t, err)
	ds, err := field.New(x, y, []field.Frame{{U: um, V: vm, CHC: chc}}, field.DefaultAttrs())
	require.NoError(t, err)
	return ds
}

func ramp(t testing.TB, n int) *field.Dataset {
	t.Helper()
	ds, err := sample.Dataset(n)
	require.NoError(t, err)
	return ds
}

func at(t testing.TB, m *grid.Dense, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err)
	return v
}

func set(t testing.TB, m *grid.Dense, i, j int, v float64) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v))
}
