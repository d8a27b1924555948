package peaks

import (
	"fmt"
	"math"
)

// searchHalfWindow is the fixed half-width, in wavenumber units, of the
// window scanned around each peak when picking its representative raw sample.
const searchHalfWindow = 2.0

// Absorbance maps each detected peak wavenumber to the raw sample with the
// highest absorbance within ±2 wavenumber units. It exists for display and
// reporting; the anchor/baseline pipeline does not depend on it. Ties go to
// the earliest sample. A peak with no raw samples in its window is an error,
// since there is nothing to represent it with.
func Absorbance(peakWavenumbers, rawX, rawY []float64) (wv, abs []float64, err error) {
	if len(rawX) == 0 || len(rawY) == 0 {
		return nil, nil, ErrEmptyCurve
	}

	if len(rawX) != len(rawY) {
		return nil, nil, ErrLengthMismatch
	}

	wv = make([]float64, 0, len(peakWavenumbers))
	abs = make([]float64, 0, len(peakWavenumbers))

	for _, peak := range peakWavenumbers {
		best := -1

		for i, v := range rawX {
			if math.Abs(v-peak) > searchHalfWindow {
				continue
			}

			if best < 0 || rawY[i] > rawY[best] {
				best = i
			}
		}

		if best < 0 {
			return nil, nil, fmt.Errorf("%w: ±%g around wavenumber %g", ErrEmptyWindow, searchHalfWindow, peak)
		}

		wv = append(wv, rawX[best])
		abs = append(abs, rawY[best])
	}

	return wv, abs, nil
}
