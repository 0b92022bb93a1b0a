package estimator

import "github.com/edp1096/socest/pkg/table"

// RegressorBuffer holds the one-step delay taps that build the RLS
// regressor and its self-referential target across steps. Every tap is
// latched once at the end of a step and consumed at the start of the
// next: this collapses the reference system's scattered per-signal delay
// registers into a single end-of-step update.
type RegressorBuffer struct {
	ocvTap float64 // OCV(SoC) latched at the end of the previous step
	vTap   float64 // measured voltage latched at the end of the previous step
	iTap   float64 // measured current latched at the end of the previous step
	yTap   float64 // phi . theta latched at the end of the previous step
}

// NewRegressorBuffer returns a buffer with all taps at zero, matching the
// reference system's cold-start state (first step's phi0 and y are both 0).
func NewRegressorBuffer() *RegressorBuffer {
	return &RegressorBuffer{}
}

// Next builds the regressor for the step about to run from the current
// measured current i and the lagged current latched at the end of the
// previous step, together with the RLS target y latched at the same time.
func (b *RegressorBuffer) Next(i float64) (phi [3]float64, y float64) {
	phi = [3]float64{b.ocvTap - b.vTap, i, b.iTap}
	return phi, b.yTap
}

// Latch updates the taps at the end of a step: ocvTap/vTap from this
// step's OCV(SoC_prior) and measured voltage, iTap from this step's
// measured current, and yTap from this step's regressor dotted with the
// RLS's post-update, unsaturated theta.
func (b *RegressorBuffer) Latch(phi, thetaRaw [3]float64, i, v, socPrior float64, ocv *table.Table) {
	b.ocvTap = ocv.Lookup(socPrior)
	b.vTap = v
	b.iTap = i
	b.yTap = phi[0]*thetaRaw[0] + phi[1]*thetaRaw[1] + phi[2]*thetaRaw[2]
}
