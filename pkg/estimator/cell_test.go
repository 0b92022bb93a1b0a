package estimator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edp1096/socest/pkg/table"
)

func newTestCell(t *testing.T) *Cell {
	bp := make([]float64, 0, 21)
	ocvData := make([]float64, 0, 21)
	docvData := make([]float64, 0, 21)
	for i := 0; i <= 20; i++ {
		soc := float64(i) / 20
		bp = append(bp, soc)
		ocvData = append(ocvData, 3.0+1.2*soc)
		docvData = append(docvData, 1.2)
	}
	ocv, err := table.New(bp, ocvData)
	require.NoError(t, err)
	docv, err := table.New(bp, docvData)
	require.NoError(t, err)

	c, err := New(Config{OCV: ocv, DOCV: docv})
	require.NoError(t, err)
	return c
}

func TestCellRejectsMismatchedTables(t *testing.T) {
	bp := []float64{0, 1}
	ocv, _ := table.New(bp, []float64{3.0, 4.2})
	docv, _ := table.New([]float64{0, 0.5, 1}, []float64{1, 1, 1})

	_, err := New(Config{OCV: ocv, DOCV: docv})
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestCellStepBeforeNewFails(t *testing.T) {
	var c Cell
	_, err := c.Step(1, 3.7)
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestCellStepProducesBoundedSoC(t *testing.T) {
	c := newTestCell(t)

	for i := 0; i < 100; i++ {
		res, err := c.Step(1.0, 3.7)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.SoC, 0.0)
		assert.LessOrEqual(t, res.SoC, 1.0)
		if res.Alpha != 0 {
			assert.Greater(t, res.Alpha, 0.0)
			assert.Less(t, res.Alpha, 1.0)
		}
	}
}

func TestCellStepIsDeterministic(t *testing.T) {
	c1 := newTestCell(t)
	c2 := newTestCell(t)

	samples := []struct{ i, v float64 }{
		{1.0, 3.9}, {0.5, 3.85}, {-0.5, 3.95}, {0, 3.92},
	}

	var r1, r2 StepResult
	for _, s := range samples {
		var err error
		r1, err = c1.Step(s.i, s.v)
		require.NoError(t, err)
	}
	for _, s := range samples {
		var err error
		r2, err = c2.Step(s.i, s.v)
		require.NoError(t, err)
	}

	assert.Equal(t, r1, r2)
}

func TestCellDischargeDoesNotRaiseSoCOverRun(t *testing.T) {
	c := newTestCell(t)

	first, err := c.Step(1.0, 3.7)
	require.NoError(t, err)

	var last StepResult
	for i := 0; i < 50; i++ {
		last, err = c.Step(1.0, 3.7)
		require.NoError(t, err)
	}

	assert.LessOrEqual(t, last.SoC, first.SoC+1e-9)
}
