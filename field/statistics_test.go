package field_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlpiv/field"
)

// TestAverage checks the time mean, its timestamp and NaN handling.
func TestAverage(t *testing.T) {
	ds := ramp(t, 3)
	avg, err := ds.Average()
	require.NoError(t, err)
	require.Equal(t, 1, avg.Len())
	assert.Equal(t, 0.0, avg.Frames[0].T)
	assert.Equal(t, 2.0, at(t, avg.Frames[0].U, 0, 0))
	assert.Equal(t, 9.0, at(t, avg.Frames[0].U, 4, 7))
	assert.Equal(t, -1.0, at(t, avg.Frames[0].V, 0, 0))
	assert.Equal(t, 1.0, at(t, avg.Frames[0].CHC, 0, 0))

	set(t, ds.Frames[0].U, 0, 0, math.NaN())
	avg, err = ds.Average()
	require.NoError(t, err)
	assert.Equal(t, 2.5, at(t, avg.Frames[0].U, 0, 0), "masked samples are skipped")

	_, err = (&field.Dataset{}).Average()
	assert.ErrorIs(t, err, field.ErrEmptyDataset)
}

// TestFluctuations subtracts the mean from every frame.
func TestFluctuations(t *testing.T) {
	ds := ramp(t, 3)
	fl, err := ds.Fluctuations(field.WithWorkers(2))
	require.NoError(t, err)
	require.Equal(t, 3, fl.Len())
	for k, f := range fl.Frames {
		assert.Equal(t, float64(k)-1, at(t, f.U, 2, 5))
		assert.Equal(t, 0.0, at(t, f.V, 2, 5))
		assert.Equal(t, ds.Frames[k].T, f.T)
	}
}

// TestReynoldsStressRMS checks second-order moments of the fluctuations.
func TestReynoldsStressRMS(t *testing.T) {
	ds := ramp(t, 3)

	rs, err := ds.ReynoldsStress()
	require.NoError(t, err)
	assert.Equal(t, field.ScalarReynoldsStress, rs.Scalar)
	assert.Equal(t, 0.0, at(t, rs.Frames[0].W, 1, 1), "v' is zero")
	assert.Equal(t, 2.0, at(t, rs.Frames[0].U, 0, 0), "U holds the mean")

	rms, err := ds.RMS()
	require.NoError(t, err)
	assert.Equal(t, field.ScalarRMS, rms.Scalar)
	assert.InDelta(t, math.Sqrt(2.0/3.0), at(t, rms.Frames[0].W, 3, 4), 1e-12)
}
