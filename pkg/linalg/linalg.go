// Package linalg provides the small, fixed-size dense linear algebra and
// saturation primitives the estimator package builds on: 2x2 and 3x3
// matrix operations backed by gonum/mat, and componentwise clamping.
package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Clamp restricts u to [lo, hi] and reports whether clamping occurred.
func Clamp(u, lo, hi float64) (v float64, hit bool) {
	switch {
	case u < lo:
		return lo, true
	case u > hi:
		return hi, true
	default:
		return u, false
	}
}

// Mat2 is a fixed 2x2 dense matrix backed by gonum/mat, preallocated once
// and mutated in place by every operation.
type Mat2 struct {
	d *mat.Dense
}

// NewMat2 builds a Mat2 from row-major entries a00, a01, a10, a11.
func NewMat2(a00, a01, a10, a11 float64) *Mat2 {
	return &Mat2{d: mat.NewDense(2, 2, []float64{a00, a01, a10, a11})}
}

// ZeroMat2 returns a zeroed 2x2 matrix.
func ZeroMat2() *Mat2 { return &Mat2{d: mat.NewDense(2, 2, nil)} }

// At returns entry (i, j).
func (m *Mat2) At(i, j int) float64 { return m.d.At(i, j) }

// Set writes entry (i, j).
func (m *Mat2) Set(i, j int, v float64) { m.d.Set(i, j, v) }

// Dense exposes the backing gonum matrix for callers that need the raw
// mat.Matrix interface (e.g. to feed mat.Dense.Solve).
func (m *Mat2) Dense() *mat.Dense { return m.d }

// Mul sets m = a*b.
func (m *Mat2) Mul(a, b *Mat2) { m.d.Mul(a.d, b.d) }

// Add sets m = a+b.
func (m *Mat2) Add(a, b *Mat2) { m.d.Add(a.d, b.d) }

// Sub sets m = a-b.
func (m *Mat2) Sub(a, b *Mat2) { m.d.Sub(a.d, b.d) }

// T returns a transposed copy of m.
func (m *Mat2) T() *Mat2 {
	out := ZeroMat2()
	out.d.CloneFrom(m.d.T())
	return out
}

// Scale sets m = k*a.
func (m *Mat2) Scale(k float64, a *Mat2) { m.d.Scale(k, a.d) }

// SymmetrizeAndFloor forces m symmetric (averaging with its transpose) and
// floors both diagonal entries at floor, matching the covariance-matrix
// numerical-safety invariant shared by the RLS and EKF covariances.
func (m *Mat2) SymmetrizeAndFloor(floor float64) {
	off := (m.At(0, 1) + m.At(1, 0)) / 2
	m.Set(0, 1, off)
	m.Set(1, 0, off)
	if m.At(0, 0) < floor {
		m.Set(0, 0, floor)
	}
	if m.At(1, 1) < floor {
		m.Set(1, 1, floor)
	}
}

// Mat3 is a fixed 3x3 dense matrix backed by gonum/mat.
type Mat3 struct {
	d *mat.Dense
}

// NewMat3FromRowMajor builds a Mat3 from 9 row-major entries.
func NewMat3FromRowMajor(entries [9]float64) *Mat3 {
	return &Mat3{d: mat.NewDense(3, 3, entries[:])}
}

// IdentityMat3 returns a 3x3 identity matrix.
func IdentityMat3() *Mat3 {
	m := &Mat3{d: mat.NewDense(3, 3, nil)}
	m.d.Set(0, 0, 1)
	m.d.Set(1, 1, 1)
	m.d.Set(2, 2, 1)
	return m
}

// ZeroMat3 returns a zeroed 3x3 matrix.
func ZeroMat3() *Mat3 { return &Mat3{d: mat.NewDense(3, 3, nil)} }

func (m *Mat3) At(i, j int) float64     { return m.d.At(i, j) }
func (m *Mat3) Set(i, j int, v float64) { m.d.Set(i, j, v) }
func (m *Mat3) Dense() *mat.Dense       { return m.d }

func (m *Mat3) Mul(a, b *Mat3) { m.d.Mul(a.d, b.d) }
func (m *Mat3) Add(a, b *Mat3) { m.d.Add(a.d, b.d) }
func (m *Mat3) Sub(a, b *Mat3) { m.d.Sub(a.d, b.d) }
func (m *Mat3) Scale(k float64, a *Mat3) { m.d.Scale(k, a.d) }

// SymmetrizeAndFloor forces m symmetric and floors every diagonal entry.
func (m *Mat3) SymmetrizeAndFloor(floor float64) {
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			avg := (m.At(i, j) + m.At(j, i)) / 2
			m.Set(i, j, avg)
			m.Set(j, i, avg)
		}
	}
	for i := 0; i < 3; i++ {
		if m.At(i, i) < floor {
			m.Set(i, i, floor)
		}
	}
}

// MulVec3 returns A*v for a 3-vector v.
func (m *Mat3) MulVec3(v [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		sum := 0.0
		for j := 0; j < 3; j++ {
			sum += m.At(i, j) * v[j]
		}
		out[i] = sum
	}
	return out
}

// Dot3 returns the dot product of two 3-vectors.
func Dot3(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// OuterVec3 returns the outer product a*b^T scaled by k.
func OuterVec3(a, b [3]float64, k float64) *Mat3 {
	out := ZeroMat3()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.Set(i, j, k*a[i]*b[j])
		}
	}
	return out
}

// Inverse3 returns the inverse of m, or an error if m is singular to
// working precision.
func Inverse3(m *Mat3) (*Mat3, error) {
	out := ZeroMat3()
	if err := out.d.Inverse(m.d); err != nil {
		return nil, fmt.Errorf("linalg: 3x3 matrix is singular: %v", err)
	}
	return out, nil
}
