package consts

const (
	// CapacityFactor is the per-step Coulomb-counting coefficient applied to
	// measured current to advance SoC: SoC' = SoC - CapacityFactor*I. Carried
	// bit-exact from the generated reference implementation.
	CapacityFactor = 5.41013122814307E-5

	// ForgettingFactor is the RLS forgetting factor lambda.
	ForgettingFactor = 0.9999

	// CovarianceInflation (1/ForgettingFactor) scales P_rls exactly once per
	// step, after the gain/outer-product subtraction, compensating the
	// forgetting factor's decay.
	CovarianceInflation = 1.000100010001

	// MeasurementNoise is the EKF's scalar measurement noise variance R.
	MeasurementNoise = 1.0

	// CovarianceFloor is the minimum allowed value on any covariance
	// diagonal entry (P_rls and P_ekf).
	CovarianceFloor = 1e-6

	// MinSoC and MaxSoC bound the estimator's state of charge output.
	MinSoC = 0.0
	MaxSoC = 1.0
)

// Theta0 is the initial, unsaturated RLS parameter seed: the raw
// discrete-pole, ohmic-resistance and polarization coefficients (s0, s1,
// s2) before reparameterization.
var Theta0 = [3]float64{0.0016, 0.0063, 0.0013}

// ThetaLowerBound and ThetaUpperBound are the componentwise saturation
// bounds applied to theta after every RLS update.
var (
	ThetaLowerBound = [3]float64{1e-6, 1e-6, 1e-6}
	ThetaUpperBound = [3]float64{0.1, 0.5, 0.5}
)

// ProcessNoiseDiag is the EKF process noise covariance Q's diagonal,
// (SoC, Vrc).
var ProcessNoiseDiag = [2]float64{1e-9, 1.0}

// InitialState is the EKF state seed (SoC, Vrc).
var InitialState = [2]float64{1.0, 0.0}
