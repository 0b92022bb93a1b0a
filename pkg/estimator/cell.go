// Package estimator implements the joint RLS/EKF battery state-of-charge
// estimator: an RLS identifier tracks an equivalent-circuit model's
// parameters online, reparameterized each step into the discrete pole and
// resistances an EKF uses to track (SoC, polarization voltage).
package estimator

import (
	"github.com/edp1096/socest/internal/consts"
	"github.com/edp1096/socest/pkg/linalg"
	"github.com/edp1096/socest/pkg/table"
)

// lifecycle mirrors the reference system's scattered icLoad* seed flags,
// collapsed into a single state set by New and checked by every Step call.
type lifecycle int

const (
	uninitialized lifecycle = iota
	initialized
)

// StepResult is the output of one Cell.Step call.
type StepResult struct {
	SoC       float64
	Vrc       float64
	Alpha     float64
	R0        float64
	R1        float64
	Saturated bool // true if SoC, theta, or the reparameterization clamped this step
}

// Cell drives one estimator step per call: build the RLS regressor,
// update RLS, reparameterize into (alpha, R0, R1), run the EKF
// predict/correct pair against the OCV and dOCV/dSoC tables, and emit the
// freshly computed SoC.
type Cell struct {
	state lifecycle

	rls  *RLS
	ekf  *EKF
	regs *RegressorBuffer

	ocv  *table.Table
	docv *table.Table

	lastAlpha, lastR0, lastR1 float64
}

// Config bundles everything Cell needs to initialize: the breakpoint
// tables and the numerical constants governing the RLS/EKF pair. Zero
// value fields fall back to the reference system's defaults inside New.
type Config struct {
	OCV  *table.Table
	DOCV *table.Table

	Theta0              [3]float64
	ThetaLower          [3]float64
	ThetaUpper          [3]float64
	ForgettingFactor    float64
	CovarianceInflation float64
	CovarianceFloor     float64

	InitialSoC, InitialVrc float64
	ProcessNoiseDiag       [2]float64
	MeasurementNoise       float64
	CapacityFactor         float64
}

// New builds a Cell from cfg. OCV and DOCV tables are required; every
// other field defaults to the reference system's numerical constants when
// left at its zero value as a safeguard, but callers should normally set
// them explicitly via config.LoadParams and config.BuildCellConfig.
func New(cfg Config) (*Cell, error) {
	if cfg.OCV == nil || cfg.DOCV == nil {
		return nil, ErrInvalidConfig
	}
	if cfg.OCV.Len() != cfg.DOCV.Len() {
		return nil, ErrInvalidConfig
	}

	theta0 := cfg.Theta0
	if theta0 == ([3]float64{}) {
		theta0 = consts.Theta0
	}
	thetaLower := cfg.ThetaLower
	if thetaLower == ([3]float64{}) {
		thetaLower = consts.ThetaLowerBound
	}
	thetaUpper := cfg.ThetaUpper
	if thetaUpper == ([3]float64{}) {
		thetaUpper = consts.ThetaUpperBound
	}
	lambda := cfg.ForgettingFactor
	if lambda == 0 {
		lambda = consts.ForgettingFactor
	}
	inflation := cfg.CovarianceInflation
	if inflation == 0 {
		inflation = consts.CovarianceInflation
	}
	floor := cfg.CovarianceFloor
	if floor == 0 {
		floor = consts.CovarianceFloor
	}
	qDiag := cfg.ProcessNoiseDiag
	if qDiag == ([2]float64{}) {
		qDiag = consts.ProcessNoiseDiag
	}
	r := cfg.MeasurementNoise
	if r == 0 {
		r = consts.MeasurementNoise
	}
	kappa := cfg.CapacityFactor
	if kappa == 0 {
		kappa = consts.CapacityFactor
	}
	soc0 := cfg.InitialSoC
	if soc0 == 0 {
		soc0 = consts.InitialState[0]
	}

	if lambda <= 0 || lambda > 1 {
		return nil, ErrInvalidConfig
	}

	rls := NewRLS(theta0, linalg.IdentityMat3(), lambda, inflation, floor, thetaLower, thetaUpper)
	q := linalg.NewMat2(qDiag[0], 0, 0, qDiag[1])
	ekf := NewEKF(soc0, cfg.InitialVrc, linalg.NewMat2(1, 0, 0, 1), q, r, kappa, floor)

	alpha, r0, r1, ok := reparameterize(rls.Theta())
	if !ok {
		alpha, r0, r1 = 0, 0, 0
	}

	return &Cell{
		state:     initialized,
		rls:       rls,
		ekf:       ekf,
		regs:      NewRegressorBuffer(),
		ocv:       cfg.OCV,
		docv:      cfg.DOCV,
		lastAlpha: alpha, lastR0: r0, lastR1: r1,
	}, nil
}

// Step consumes one (current, voltage) sample and returns the updated
// estimate. It returns ErrNotInitialized if called on a zero-value Cell
// (constructed without New).
func (c *Cell) Step(current, voltage float64) (StepResult, error) {
	if c.state != initialized {
		return StepResult{}, ErrNotInitialized
	}

	socPrior := c.ekf.SoC()
	phi, y := c.regs.Next(current)

	saturated := false

	theta, thetaHit, err := c.rls.Update(phi, y)
	saturated = saturated || thetaHit
	if err != nil && err != ErrNumericalBreakdown {
		return StepResult{}, err
	}

	alpha, r0, r1, ok := reparameterize(theta)
	if ok {
		c.lastAlpha, c.lastR0, c.lastR1 = alpha, r0, r1
	} else {
		saturated = true
		alpha, r0, r1 = c.lastAlpha, c.lastR0, c.lastR1
	}

	c.ekf.Predict(current, alpha, r1)

	_, corrClamped, err := c.ekf.Correct(current, voltage, r0, socPrior, c.ocv, c.docv)
	if err != nil && err != ErrNumericalBreakdown {
		return StepResult{}, err
	}
	saturated = saturated || corrClamped

	c.regs.Latch(phi, c.rls.RawTheta(), current, voltage, socPrior, c.ocv)

	return StepResult{
		SoC:       c.ekf.SoC(),
		Vrc:       c.ekf.Vrc(),
		Alpha:     alpha,
		R0:        r0,
		R1:        r1,
		Saturated: saturated,
	}, nil
}

// Close releases no resources beyond normal garbage collection; it exists
// for lifecycle symmetry with callers that pair New with a teardown step.
func (c *Cell) Close() {}
