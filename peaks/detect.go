// Package peaks locates absorption peaks in the second derivative of an
// absorbance spectrum. Absorption bands produce strong negative lobes in the
// second derivative, so the curve is negated internally and peaks are found
// as prominent local maxima of the inverted signal.
package peaks

import (
	"errors"

	"gonum.org/v1/gonum/floats"
)

// DefaultThreshold is the default prominence threshold, expressed as a
// fraction of the maximum of the inverted second derivative.
const DefaultThreshold = 0.15

var (
	ErrEmptyCurve     = errors.New("peaks: empty curve")
	ErrLengthMismatch = errors.New("peaks: wavenumber and value slices differ in length")
	ErrBadPeakIndex   = errors.New("peaks: peak index out of range")
	ErrEmptyWindow    = errors.New("peaks: no raw samples within the search window")
)

// Detect finds local maxima of the inverted second derivative whose
// prominence is at least threshold times the maximum inverted value. It
// returns the peak indices into the curve in ascending order and the
// wavenumbers at those indices. Finding no qualifying peak is not an error;
// both returned slices are empty in that case and callers must branch on it.
//
// A curve whose inverted maximum is zero or negative yields a non-positive
// prominence floor, which admits every local maximum.
func Detect(x, y []float64, threshold float64) (indices []int, wavenumbers []float64, err error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, nil, ErrEmptyCurve
	}

	if len(x) != len(y) {
		return nil, nil, ErrLengthMismatch
	}

	inverted := invert(y)
	relHeight := threshold * floats.Max(inverted)

	maxima := localMaxima(inverted)

	indices = make([]int, 0, len(maxima))
	wavenumbers = make([]float64, 0, len(maxima))

	for _, m := range maxima {
		prom, _, _ := prominence(inverted, m)
		if prom >= relHeight {
			indices = append(indices, m)
			wavenumbers = append(wavenumbers, x[m])
		}
	}

	return indices, wavenumbers, nil
}

func invert(y []float64) []float64 {
	out := make([]float64, len(y))
	for i, v := range y {
		out[i] = -v
	}

	return out
}

// localMaxima returns the index of every strict local maximum in y. A plateau
// bounded by lower samples on both sides counts as one maximum located at the
// left-middle sample of the plateau.
func localMaxima(y []float64) []int {
	var maxima []int

	iMax := len(y) - 1
	for i := 1; i < iMax; i++ {
		if y[i-1] >= y[i] {
			continue
		}

		// Skip over a flat top, then require a drop on the far side.
		ahead := i + 1
		for ahead < iMax && y[ahead] == y[i] {
			ahead++
		}

		if y[ahead] < y[i] {
			maxima = append(maxima, (i+ahead-1)/2)
			i = ahead
		}
	}

	return maxima
}

// prominence measures how far the maximum at peak rises above the higher of
// the two minima that bound it, scanning outward on each side until a sample
// higher than the peak (or the curve edge) is reached. It also returns the
// positions of those bounding minima.
func prominence(y []float64, peak int) (prom float64, leftBase, rightBase int) {
	leftBase = peak
	leftMin := y[peak]

	for i := peak - 1; i >= 0 && y[i] <= y[peak]; i-- {
		if y[i] < leftMin {
			leftMin = y[i]
			leftBase = i
		}
	}

	rightBase = peak
	rightMin := y[peak]

	for i := peak + 1; i < len(y) && y[i] <= y[peak]; i++ {
		if y[i] < rightMin {
			rightMin = y[i]
			rightBase = i
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}

	return y[peak] - base, leftBase, rightBase
}
