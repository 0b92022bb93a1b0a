package estimator

import "math"

// reparamEpsilon guards the R1 = m/(1-alpha) division against a
// near-unity alpha, which would otherwise blow up the process-model
// resistance term.
const reparamEpsilon = 1e-9

// reparameterize maps the saturated RLS parameter vector theta = (s0, s1,
// s2) onto the discrete-time ECM quantities the EKF consumes: the
// discrete RC pole alpha, the ohmic resistance R0 used in the measurement
// model, and the polarization resistance R1 used in the process model.
//
// alpha = s0 directly: the reference system composes alpha as
// exp(-1/X/Y) with X = m/(1-s0) and Y = -(1-s0)/(m*ln(s0)), and X*Y
// reduces to -1/ln(s0), so exp(-1/X/Y) = exp(ln(s0)) = s0.
//
// R0 = s1, not s0 - the measurement model's ohmic drop uses the second
// saturated parameter.
//
// R1 = m/(1-s0) where m = s0*s1+s2.
func reparameterize(theta [3]float64) (alpha, r0, r1 float64, ok bool) {
	s0, s1, s2 := theta[0], theta[1], theta[2]

	denom := 1 - s0
	if math.Abs(denom) < reparamEpsilon {
		return 0, 0, 0, false
	}

	m := s0*s1 + s2
	alpha = s0
	r0 = s1
	r1 = m / denom

	if alpha <= 0 || alpha >= 1 {
		return 0, 0, 0, false
	}
	return alpha, r0, r1, true
}
