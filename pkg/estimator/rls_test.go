package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/socest/internal/consts"
)

func TestRLSThetaStaysWithinBounds(t *testing.T) {
	r := NewDefaultRLS()

	for i := 0; i < 200; i++ {
		phi := [3]float64{0.01 * float64(i%7), 1.0, 0.5}
		theta, _, err := r.Update(phi, 0.02)
		require.True(t, err == nil || err == ErrNumericalBreakdown)

		for k := 0; k < 3; k++ {
			assert.GreaterOrEqual(t, theta[k], consts.ThetaLowerBound[k])
			assert.LessOrEqual(t, theta[k], consts.ThetaUpperBound[k])
		}
	}
}

func TestRLSZeroRegressorIsNotSingular(t *testing.T) {
	r := NewDefaultRLS()

	// A zero regressor drives S toward lambda alone, nowhere near the
	// singularity guard, so this must not report a breakdown.
	_, _, err := r.Update([3]float64{0, 0, 0}, 0)
	require.NoError(t, err)
}

func TestRLSDeterministic(t *testing.T) {
	seq := []struct {
		phi [3]float64
		y   float64
	}{
		{[3]float64{0.1, 1.0, 0.4}, 0.02},
		{[3]float64{0.2, -0.5, 0.41}, -0.01},
		{[3]float64{-0.1, 0.3, 0.42}, 0.005},
	}

	r1 := NewDefaultRLS()
	r2 := NewDefaultRLS()

	var last1, last2 [3]float64
	for _, s := range seq {
		last1, _, _ = r1.Update(s.phi, s.y)
	}
	for _, s := range seq {
		last2, _, _ = r2.Update(s.phi, s.y)
	}

	assert.Equal(t, last1, last2)
}
