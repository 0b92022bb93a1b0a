package estimator

import (
	"github.com/edp1096/socest/internal/consts"
	"github.com/edp1096/socest/pkg/linalg"
	"github.com/edp1096/socest/pkg/table"
)

// EKF tracks the two-state (SoC, polarization voltage Vrc) battery model,
// linearized each step around the RLS identifier's current (alpha, R0, R1)
// estimate and the OCV/dOCV-dSoC breakpoint tables.
type EKF struct {
	soc float64
	vrc float64
	p   *linalg.Mat2
	q   *linalg.Mat2
	r   float64

	capacityFactor float64 // kappa: SoC' = SoC - kappa*I
	floor          float64
}

// NewEKF builds an EKF seeded at (soc0, vrc0) with covariance p0.
func NewEKF(soc0, vrc0 float64, p0 *linalg.Mat2, q *linalg.Mat2, r, capacityFactor, floor float64) *EKF {
	return &EKF{soc: soc0, vrc: vrc0, p: p0, q: q, r: r, capacityFactor: capacityFactor, floor: floor}
}

// NewDefaultEKF builds an EKF using the reference system's numerical
// constants.
func NewDefaultEKF() *EKF {
	q := linalg.NewMat2(consts.ProcessNoiseDiag[0], 0, 0, consts.ProcessNoiseDiag[1])
	p0 := linalg.NewMat2(1, 0, 0, 1)
	return NewEKF(consts.InitialState[0], consts.InitialState[1], p0, q,
		consts.MeasurementNoise, consts.CapacityFactor, consts.CovarianceFloor)
}

// SoC returns the current state-of-charge estimate.
func (e *EKF) SoC() float64 { return e.soc }

// Vrc returns the current polarization voltage estimate.
func (e *EKF) Vrc() float64 { return e.vrc }

// Predict advances the state one step using current I and the RLS-derived
// discrete pole alpha and resistance R1, then floors/re-symmetrizes P. SoC
// is left unclamped here: the reference model saturates state of charge
// only once, after Correct runs.
func (e *EKF) Predict(current, alpha, r1 float64) {
	f := linalg.NewMat2(1, 0, 0, alpha)

	socPred := e.soc - e.capacityFactor*current
	vrcPred := alpha*e.vrc + r1*(1-alpha)*current

	e.soc = socPred
	e.vrc = vrcPred

	fp := linalg.ZeroMat2()
	fp.Mul(f, e.p)
	fpft := linalg.ZeroMat2()
	fpft.Mul(fp, f.T())

	pPred := linalg.ZeroMat2()
	pPred.Add(fpft, e.q)
	pPred.SymmetrizeAndFloor(e.floor)
	e.p = pPred
}

// Correct runs the measurement update against a measured terminal voltage
// v, given the present current i, resistance r0, and OCV/dOCV-dSoC tables
// evaluated at ocvSoC - the SoC estimate from before this step's Predict
// call, matching the reference model's use of the previous step's final
// SoC for its OCV lookup. Returns the predicted voltage used for the
// innovation and whether the corrected SoC was clamped to [MinSoC, MaxSoC].
// If the innovation covariance is too close to singular to update, state
// and covariance are left unchanged and ErrNumericalBreakdown is returned.
func (e *EKF) Correct(i, v float64, r0, ocvSoC float64, ocv, docv *table.Table) (vPred float64, socClamped bool, err error) {
	ocvAtSoC := ocv.Lookup(ocvSoC)
	dOCVdSoC := docv.Lookup(ocvSoC)

	vPred = ocvAtSoC - e.vrc - r0*i

	h := [2]float64{dOCVdSoC, -1}

	hp := [2]float64{
		h[0]*e.p.At(0, 0) + h[1]*e.p.At(1, 0),
		h[0]*e.p.At(0, 1) + h[1]*e.p.At(1, 1),
	}
	s := hp[0]*h[0] + hp[1]*h[1] + e.r

	if s < singularThreshold && s > -singularThreshold {
		return vPred, false, ErrNumericalBreakdown
	}

	k := [2]float64{
		(e.p.At(0, 0)*h[0] + e.p.At(0, 1)*h[1]) / s,
		(e.p.At(1, 0)*h[0] + e.p.At(1, 1)*h[1]) / s,
	}

	innovation := v - vPred

	socNext := e.soc + k[0]*innovation
	vrcNext := e.vrc + k[1]*innovation

	socNext, hit := linalg.Clamp(socNext, consts.MinSoC, consts.MaxSoC)

	e.soc = socNext
	e.vrc = vrcNext

	ikh := linalg.NewMat2(
		1-k[0]*h[0], -k[0]*h[1],
		-k[1]*h[0], 1-k[1]*h[1],
	)
	pNext := linalg.ZeroMat2()
	pNext.Mul(ikh, e.p)
	pNext.SymmetrizeAndFloor(e.floor)
	e.p = pNext

	return vPred, hit, nil
}
