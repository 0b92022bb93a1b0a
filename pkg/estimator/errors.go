package estimator

import "errors"

// Sentinel errors surfaced by this package. NumericalBreakdown is recovered
// from internally and never returned by Cell.Step; it is exported so RLS
// and EKF callers outside of Cell can distinguish a skipped update from a
// genuine failure.
var (
	ErrInvalidConfig      = errors.New("estimator: invalid configuration")
	ErrNumericalBreakdown = errors.New("estimator: numerical breakdown, update skipped")
	ErrNotInitialized     = errors.New("estimator: cell not initialized")
)
