// Package spectrakit estimates the baseline of absorbance spectra. It detects
// absorption peaks in the second derivative of a spectrum, excludes the raw
// samples that fall inside each peak's footprint, and fits a spline through
// the surviving "anchor points" to recover the underlying continuum.
package spectrakit

import "errors"

var (
	ErrEmptyInput     = errors.New("spectrakit: empty input curve")
	ErrLengthMismatch = errors.New("spectrakit: wavenumber and value slices differ in length")
	ErrNonMonotonic   = errors.New("spectrakit: wavenumbers are not strictly increasing")
)

// Curve is a signal sampled at discrete wavenumbers. The same type carries
// raw spectra, second-derivative curves, and fitted baselines.
type Curve struct {
	X []float64 // wavenumber, cm^-1
	Y []float64 // absorbance, or a derivative of it
}

// NewCurve wraps parallel wavenumber/value slices, rejecting empty or
// mismatched inputs.
func NewCurve(x, y []float64) (Curve, error) {
	c := Curve{X: x, Y: y}
	if err := c.Validate(); err != nil {
		return Curve{}, err
	}

	return c, nil
}

func (c Curve) Len() int {
	return len(c.X)
}

// Validate checks the structural invariants that every stage relies on:
// non-empty, equal-length slices. Monotonicity is checked separately because
// only the baseline fitter requires it.
func (c Curve) Validate() error {
	if len(c.X) == 0 || len(c.Y) == 0 {
		return ErrEmptyInput
	}

	if len(c.X) != len(c.Y) {
		return ErrLengthMismatch
	}

	return nil
}

// StrictlyIncreasing reports whether the wavenumbers ascend with no ties.
func (c Curve) StrictlyIncreasing() bool {
	for i := 1; i < len(c.X); i++ {
		if c.X[i] <= c.X[i-1] {
			return false
		}
	}

	return true
}
