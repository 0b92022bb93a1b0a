// Package table implements a monotone one-dimensional breakpoint lookup
// with linear interpolation and extrapolation, the shape the reference
// system uses for its OCV(SoC) and dOCV/dSoC(SoC) curves.
package table

import "fmt"

const minPoints = 2

// Table is a strictly-increasing breakpoint table with linear
// interpolation in range and linear (slope-held) extrapolation outside it.
type Table struct {
	bp   []float64
	data []float64
}

// New builds a Table from parallel breakpoint/value slices. bp must be
// strictly increasing and both slices must have at least two, equal-length
// entries.
func New(bp, data []float64) (*Table, error) {
	if len(bp) < minPoints || len(data) < minPoints {
		return nil, fmt.Errorf("table: need at least %d points, got %d breakpoints and %d values", minPoints, len(bp), len(data))
	}
	if len(bp) != len(data) {
		return nil, fmt.Errorf("table: breakpoint/value length mismatch: %d vs %d", len(bp), len(data))
	}
	for i := 1; i < len(bp); i++ {
		if bp[i] <= bp[i-1] {
			return nil, fmt.Errorf("table: breakpoints must be strictly increasing, bp[%d]=%g <= bp[%d]=%g", i, bp[i], i-1, bp[i-1])
		}
	}

	t := &Table{
		bp:   append([]float64(nil), bp...),
		data: append([]float64(nil), data...),
	}
	return t, nil
}

// Len returns the number of breakpoints in the table.
func (t *Table) Len() int { return len(t.bp) }

// Lookup returns the linearly interpolated (or extrapolated) value at x.
func (t *Table) Lookup(x float64) float64 {
	i := t.search(x)
	x1, x2 := t.bp[i], t.bp[i+1]
	y1, y2 := t.data[i], t.data[i+1]

	frac := (x - x1) / (x2 - x1)
	return y1 + frac*(y2-y1)
}

// search returns the index i such that bp[i] <= x < bp[i+1], clamped so
// that i+1 is always a valid index. Out-of-range x clamps to the first or
// last segment, which is what makes Lookup extrapolate linearly.
func (t *Table) search(x float64) int {
	n := len(t.bp)
	if x <= t.bp[0] {
		return 0
	}
	if x >= t.bp[n-1] {
		return n - 2
	}

	left, right := 0, n-1
	for right-left > 1 {
		mid := (left + right) / 2
		if x < t.bp[mid] {
			right = mid
		} else {
			left = mid
		}
	}
	return left
}
