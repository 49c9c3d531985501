package regions_test

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlpiv/grid"
	"github.com/katalvlaran/lvlpiv/regions"
)

func boolGrid(rows ...string) [][]bool {
	out := make([][]bool, len(rows))
	for i, r := range rows {
		out[i] = make([]bool, len(r))
		for j, ch := range r {
			out[i][j] = ch == '1'
		}
	}
	return out
}

// TestFromBool_Errors verifies that FromBool rejects empty or ragged inputs.
func TestFromBool_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   [][]bool
		err  error
	}{
		{"EmptyRows", [][]bool{}, regions.ErrEmptyGrid},
		{"EmptyCols", [][]bool{{}}, regions.ErrEmptyGrid},
		{"NonRectangular", [][]bool{{true, false}, {true}}, regions.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := regions.FromBool(tc.in, regions.Conn4)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}

// TestConnectedComponents_Simple4: two islands of sizes 4 and 2 under Conn4.
//
//	0 1 1 0
//	1 1 0 0
//	0 0 1 1
func TestConnectedComponents_Simple4(t *testing.T) {
	mk, err := regions.FromBool(boolGrid("0110", "1100", "0011"), regions.Conn4)
	require.NoError(t, err)

	comps := mk.ConnectedComponents()
	require.Len(t, comps, 2)
	assert.Equal(t, 4, comps[0].Area())
	assert.Equal(t, 1, comps[0].Seed)
	assert.Equal(t, 2, comps[1].Area())
	assert.Equal(t, 6, mk.Count())
}

// TestConnectedComponents_Diagonal8: an X shape is one region under Conn8 and
// nine regions under Conn4.
func TestConnectedComponents_Diagonal8(t *testing.T) {
	x := boolGrid("10001", "01010", "00100", "01010", "10001")

	m8, err := regions.FromBool(x, regions.Conn8)
	require.NoError(t, err)
	require.Len(t, m8.ConnectedComponents(), 1)

	m4, err := regions.FromBool(x, regions.Conn4)
	require.NoError(t, err)
	assert.Len(t, m4.ConnectedComponents(), 9)
}

// TestFromGrid_ThresholdAbsNaN checks marking policy on float fields.
func TestFromGrid_ThresholdAbsNaN(t *testing.T) {
	m, err := grid.NewDenseFrom(2, 3, []float64{
		0.9, -0.9, math.NaN(),
		0.1, 0.7, -0.2,
	})
	require.NoError(t, err)

	signed, err := regions.FromGrid(m, regions.Options{Threshold: 0.5})
	require.NoError(t, err)
	assert.True(t, signed.Marked(0, 0))
	assert.False(t, signed.Marked(1, 0))
	assert.False(t, signed.Marked(2, 0), "NaN is never marked")

	abs, err := regions.FromGrid(m, regions.Options{Threshold: 0.5, Abs: true})
	require.NoError(t, err)
	assert.Equal(t, 3, abs.Count())
	comps := abs.ConnectedComponents()
	require.Len(t, comps, 1)
	cells := append([]int(nil), comps[0].Cells...)
	sort.Ints(cells)
	assert.Equal(t, []int{0, 1, 4}, cells)

	labels := abs.Labels()
	assert.Equal(t, []int{1, 1, 0, 0, 1, 0}, labels)

	_, err = abs.Component(1)
	assert.ErrorIs(t, err, regions.ErrComponentIndex)
	x, y := abs.Coordinate(4)
	assert.Equal(t, 1, x)
	assert.Equal(t, 1, y)
}
