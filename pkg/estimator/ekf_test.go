package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/socest/internal/consts"
	"github.com/edp1096/socest/pkg/table"
)

func flatOCVTables(t *testing.T) (*table.Table, *table.Table) {
	bp := []float64{0, 0.5, 1}
	ocv, err := table.New(bp, []float64{3.0, 3.7, 4.2})
	require.NoError(t, err)
	docv, err := table.New(bp, []float64{1.4, 1.0, 1.0})
	require.NoError(t, err)
	return ocv, docv
}

func TestEKFCorrectClampsSoC(t *testing.T) {
	ocv, docv := flatOCVTables(t)
	e := NewDefaultEKF()

	for i := 0; i < 5; i++ {
		socPrior := e.SoC()
		e.Predict(1e6, 0.9, 0.01) // huge discharge current
		_, _, err := e.Correct(1e6, 0, 0.01, socPrior, ocv, docv)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, e.SoC(), consts.MinSoC)
	assert.LessOrEqual(t, e.SoC(), consts.MaxSoC)
}

func TestEKFCorrectStaysBounded(t *testing.T) {
	ocv, docv := flatOCVTables(t)
	e := NewDefaultEKF()

	socPrior := e.SoC()
	e.Predict(1.0, 0.95, 0.01)
	_, _, err := e.Correct(1.0, 3.8, 0.01, socPrior, ocv, docv)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, e.SoC(), consts.MinSoC)
	assert.LessOrEqual(t, e.SoC(), consts.MaxSoC)
}

func TestEKFRestingCurrentHoldsSoCNearConstant(t *testing.T) {
	ocv, docv := flatOCVTables(t)
	e := NewDefaultEKF()

	initialSoC := e.SoC()
	for i := 0; i < 20; i++ {
		socPrior := e.SoC()
		e.Predict(0, 0.95, 0.01)
		_, _, err := e.Correct(0, ocv.Lookup(socPrior)-e.Vrc(), 0.01, socPrior, ocv, docv)
		require.NoError(t, err)
	}

	assert.InDelta(t, initialSoC, e.SoC(), 1e-6)
}
