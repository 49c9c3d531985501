package field_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlpiv/field"
	"github.com/katalvlaran/lvlpiv/grid"
)

// TestVec2Scal_Uniform: a uniform field has zero vorticity and divergence.
func TestVec2Scal_Uniform(t *testing.T) {
	ds := uniform(t, 4, 5, 1.5, -0.5)
	for _, prop := range []string{"vorticity", "divergence", "shear", "strain", "acceleration"} {
		t.Run(prop, func(t *testing.T) {
			out, err := ds.Vec2Scal(prop)
			require.NoError(t, err)
			assert.Equal(t, 0.0, grid.NaNAbsMax(out.Frames[0].W))
		})
	}
}

// TestVec2Scal_Ramp checks every property on the ramp sample, where
// ∂u/∂x = ∂v/∂y = 1/32 and the cross derivatives vanish.
func TestVec2Scal_Ramp(t *testing.T) {
	ds := ramp(t, 1)
	const g = 1.0 / 32
	cases := []struct {
		prop string
		want float64 // at (0, 0): u = 1, v = -1
	}{
		{"curl", 0},
		{"ken", 1},
		{"kinetic_energy", 1},
		{"divergence", 2 * g},
		{"shear", 0},
		{"strain", 2 * g * g},
		{"acceleration", math.Sqrt2 * g},
		{"magnitude", math.Sqrt2},
		{"tke", 0},
	}
	for _, tc := range cases {
		t.Run(tc.prop, func(t *testing.T) {
			out, err := ds.Vec2Scal(tc.prop)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, at(t, out.Frames[0].W, 0, 0), 1e-12)
			canonical, _ := field.CanonicalProperty(tc.prop)
			assert.Equal(t, canonical, out.Scalar)
		})
	}
	assert.Nil(t, ds.Frames[0].W, "receiver untouched")
}

// TestVec2Scal_Vortex: solid-body rotation u = -Ωy, v = Ωx has ω = 2Ω.
func TestVec2Scal_Vortex(t *testing.T) {
	ds := uniform(t, 5, 5, 0, 0)
	const omega = 0.25
	f := ds.Frames[0]
	require.NoError(t, f.U.Apply(func(i, _ int, _ float64) float64 { return -omega * ds.Y[i] }))
	require.NoError(t, f.V.Apply(func(_, j int, _ float64) float64 { return omega * ds.X[j] }))

	out, err := ds.Vec2Scal(field.PropVorticity)
	require.NoError(t, err)
	assert.InDelta(t, 2*omega, grid.NaNMean(out.Frames[0].W), 1e-12)
	assert.InDelta(t, 0, grid.NaNStd(out.Frames[0].W), 1e-12)
}

// TestVec2Scal_TKE uses the fluctuations about the time mean.
func TestVec2Scal_TKE(t *testing.T) {
	out, err := ramp(t, 3).Vec2Scal("TKE")
	require.NoError(t, err)
	assert.Equal(t, 0.5, at(t, out.Frames[0].W, 1, 1))
	assert.Equal(t, 0.0, at(t, out.Frames[1].W, 1, 1))
	assert.Equal(t, 1.0, at(t, out.Frames[0].U, 0, 0), "velocity is kept")
}

// TestVec2Scal_Errors covers unknown properties and cancellation.
func TestVec2Scal_Errors(t *testing.T) {
	ds := ramp(t, 2)
	_, err := ds.Vec2Scal("helicity")
	assert.ErrorIs(t, err, field.ErrUnknownProperty)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ds.Vec2Scal("vorticity", field.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	assert.Panics(t, func() { field.WithWorkers(0) })
}
