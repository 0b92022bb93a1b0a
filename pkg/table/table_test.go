package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsShortTables(t *testing.T) {
	_, err := New([]float64{0}, []float64{1})
	require.Error(t, err)
}

func TestNewRejectsLengthMismatch(t *testing.T) {
	_, err := New([]float64{0, 1, 2}, []float64{1, 2})
	require.Error(t, err)
}

func TestNewRejectsNonIncreasingBreakpoints(t *testing.T) {
	_, err := New([]float64{0, 1, 1}, []float64{1, 2, 3})
	require.Error(t, err)

	_, err = New([]float64{0, 2, 1}, []float64{1, 2, 3})
	require.Error(t, err)
}

func TestLookupInterpolatesLinearly(t *testing.T) {
	tbl, err := New([]float64{0, 1, 2}, []float64{0, 10, 10})
	require.NoError(t, err)

	assert.InDelta(t, 0.0, tbl.Lookup(0), 1e-12)
	assert.InDelta(t, 5.0, tbl.Lookup(0.5), 1e-12)
	assert.InDelta(t, 10.0, tbl.Lookup(1), 1e-12)
	assert.InDelta(t, 10.0, tbl.Lookup(1.5), 1e-12)
}

func TestLookupExtrapolatesHoldingSlope(t *testing.T) {
	tbl, err := New([]float64{0, 1}, []float64{0, 2})
	require.NoError(t, err)

	assert.InDelta(t, -2.0, tbl.Lookup(-1), 1e-12)
	assert.InDelta(t, 4.0, tbl.Lookup(2), 1e-12)
}

func TestLookupBoundaryExact(t *testing.T) {
	tbl, err := New([]float64{0, 0.5, 1}, []float64{3.0, 3.5, 3.9})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, tbl.Lookup(0), 1e-12)
	assert.InDelta(t, 3.9, tbl.Lookup(1), 1e-12)
}
