package estimator

import (
	"github.com/edp1096/socest/internal/consts"
	"github.com/edp1096/socest/pkg/linalg"
)

// singularThreshold guards the RLS innovation covariance denominator
// against division by (near) zero, mirroring the restatement RLS module's
// own 1e-10 guard on S.
const singularThreshold = 1e-10

// RLS identifies the three-parameter equivalent-circuit coefficients
// (raw, unsaturated theta) online from a current/voltage regressor,
// with forgetting-factor covariance inflation and componentwise
// parameter saturation.
type RLS struct {
	theta     [3]float64 // unsaturated
	p         *linalg.Mat3
	lambda    float64
	inflation float64
	floor     float64
	lower     [3]float64
	upper     [3]float64
}

// NewRLS builds an RLS identifier seeded at theta0 with covariance P0.
func NewRLS(theta0 [3]float64, p0 *linalg.Mat3, lambda, inflation, floor float64, lower, upper [3]float64) *RLS {
	return &RLS{
		theta:     theta0,
		p:         p0,
		lambda:    lambda,
		inflation: inflation,
		floor:     floor,
		lower:     lower,
		upper:     upper,
	}
}

// NewDefaultRLS builds an RLS identifier using the reference system's
// numerical constants.
func NewDefaultRLS() *RLS {
	return NewRLS(consts.Theta0, linalg.IdentityMat3(), consts.ForgettingFactor,
		consts.CovarianceInflation, consts.CovarianceFloor, consts.ThetaLowerBound, consts.ThetaUpperBound)
}

// Theta returns the current saturated parameter estimate.
func (r *RLS) Theta() [3]float64 {
	saturated, _ := r.saturated()
	return saturated
}

// RawTheta returns the current unsaturated parameter estimate, used by
// RegressorBuffer to build the next step's self-referential RLS target.
func (r *RLS) RawTheta() [3]float64 { return r.theta }

func (r *RLS) saturated() (out [3]float64, hit bool) {
	for i := range r.theta {
		v, h := linalg.Clamp(r.theta[i], r.lower[i], r.upper[i])
		out[i] = v
		hit = hit || h
	}
	return out, hit
}

// Update runs one RLS step against regressor phi and target y, returning
// the post-update saturated theta and whether saturation clamped any
// component. On a near-singular innovation covariance the update is
// skipped and ErrNumericalBreakdown is returned; theta and P are left
// unchanged.
func (r *RLS) Update(phi [3]float64, y float64) (theta [3]float64, saturatedHit bool, err error) {
	pPhi := r.p.MulVec3(phi)
	s := linalg.Dot3(phi, pPhi) + r.lambda
	if s < singularThreshold && s > -singularThreshold {
		sat, hit := r.saturated()
		return sat, hit, ErrNumericalBreakdown
	}

	var k [3]float64
	for i := range k {
		k[i] = pPhi[i] / s
	}

	innovation := y - linalg.Dot3(phi, r.theta)

	for i := range r.theta {
		r.theta[i] += k[i] * innovation
	}

	kPhiP := linalg.ZeroMat3()
	kPhiP.Mul(linalg.OuterVec3(k, phi, 1.0), r.p)

	pNext := linalg.ZeroMat3()
	pNext.Sub(r.p, kPhiP)
	pNext.Scale(r.inflation, pNext)
	pNext.SymmetrizeAndFloor(r.floor)
	r.p = pNext

	sat, hit := r.saturated()
	return sat, hit, nil
}
