// Package baseline fits a smoothing spline through anchor points and
// resamples it on a uniform wavenumber grid to produce the estimated
// baseline of a spectrum.
package baseline

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/spectrakit/spectrakit/anchors"
)

const (
	// GridSize is the number of samples in every fitted baseline curve.
	GridSize = 1000

	DefaultDegree = 3
	MinDegree     = 1
	MaxDegree     = 5
)

var (
	ErrTooFewPoints  = errors.New("baseline: not enough anchor points for the requested degree")
	ErrNonIncreasing = errors.New("baseline: anchor wavenumbers are not strictly increasing")
	ErrBadDegree     = errors.New("baseline: spline degree outside 1..5")
	ErrBadSmooth     = errors.New("baseline: smoothing factor must be non-negative")
)

// Fit fits a spline through the anchor points and evaluates it at GridSize
// uniformly spaced wavenumbers spanning the integer-truncated minimum and
// maximum anchor wavenumbers.
//
// Degree 1 fits a piecewise-linear interpolant. Higher degrees use a natural
// cubic spline: interpolating when smooth is zero, or a smoothing spline
// whose residual sum of squares is driven to the smooth budget otherwise.
// Grid samples that fall below the first anchor (the truncated lower bound
// can undershoot it by less than one wavenumber unit) evaluate to the
// spline's boundary value.
//
// At least degree+1 anchor points are required, and their wavenumbers must be
// strictly increasing; the anchor filter's dedup only removes exact
// (wavenumber, absorbance) pairs, so a repeated wavenumber with differing
// absorbances still reaches this check and is rejected here.
func Fit(points []anchors.Point, degree int, smooth float64) (wavenumbers, absorbances []float64, err error) {
	if degree < MinDegree || degree > MaxDegree {
		return nil, nil, fmt.Errorf("%w: %d", ErrBadDegree, degree)
	}

	if smooth < 0 {
		return nil, nil, fmt.Errorf("%w: %g", ErrBadSmooth, smooth)
	}

	if len(points) < degree+1 {
		return nil, nil, fmt.Errorf("%w: have %d, need at least %d", ErrTooFewPoints, len(points), degree+1)
	}

	xs := anchors.Wavenumbers(points)
	ys := anchors.Absorbances(points)

	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, nil, fmt.Errorf("%w: x[%d]=%g, x[%d]=%g", ErrNonIncreasing, i-1, xs[i-1], i, xs[i])
		}
	}

	predict, err := fitPredictor(xs, ys, degree, smooth)
	if err != nil {
		return nil, nil, err
	}

	grid := make([]float64, GridSize)
	floats.Span(grid, math.Trunc(xs[0]), math.Trunc(xs[len(xs)-1]))

	out := make([]float64, GridSize)
	for i, g := range grid {
		out[i] = predict(clamp(g, xs[0], xs[len(xs)-1]))
	}

	return grid, out, nil
}

func fitPredictor(xs, ys []float64, degree int, smooth float64) (func(float64) float64, error) {
	switch {
	case degree == 1:
		var pl interp.PiecewiseLinear
		if err := pl.Fit(xs, ys); err != nil {
			return nil, err
		}

		return pl.Predict, nil

	case smooth == 0:
		var nc interp.NaturalCubic
		if err := nc.Fit(xs, ys); err != nil {
			return nil, err
		}

		return nc.Predict, nil

	default:
		sp, err := fitSmoothingSpline(xs, ys, smooth)
		if err != nil {
			return nil, err
		}

		return sp.predict, nil
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}

	if v > hi {
		return hi
	}

	return v
}
