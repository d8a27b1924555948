package peaks

import (
	"fmt"
	"math"
)

// Widths computes, for each detected peak, the wavenumbers at which the
// inverted second derivative falls back to the level of the lower of the
// peak's two bounding minima (full relative height). The fractional boundary
// indices produced by the walk are truncated toward zero before being mapped
// through x, so each returned wavenumber is one the curve was actually
// sampled at.
//
// start holds the boundary at the lower index, end the boundary at the upper
// index. With ascending wavenumbers this puts start below the peak wavenumber
// and end above it. Boundaries saturate at the curve edges for peaks whose
// footprint runs off either end.
func Widths(x, y []float64, indices []int) (start, end []float64, err error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, nil, ErrEmptyCurve
	}

	if len(x) != len(y) {
		return nil, nil, ErrLengthMismatch
	}

	inverted := invert(y)

	start = make([]float64, 0, len(indices))
	end = make([]float64, 0, len(indices))

	for _, p := range indices {
		if p < 1 || p >= len(inverted)-1 {
			return nil, nil, fmt.Errorf("%w: %d", ErrBadPeakIndex, p)
		}

		lo, hi := boundsAtFullHeight(inverted, p)
		start = append(start, x[int(math.Trunc(lo))])
		end = append(end, x[int(math.Trunc(hi))])
	}

	return start, end, nil
}

// boundsAtFullHeight walks outward from the peak until the curve drops to the
// evaluation height (peak height minus prominence). Where the curve crosses
// the height between two samples, the crossing is interpolated linearly,
// yielding a fractional index.
func boundsAtFullHeight(y []float64, peak int) (lo, hi float64) {
	prom, leftBase, rightBase := prominence(y, peak)
	height := y[peak] - prom

	i := peak
	for i > leftBase && y[i] > height {
		i--
	}

	lo = float64(i)
	if y[i] < height {
		lo += (height - y[i]) / (y[i+1] - y[i])
	}

	i = peak
	for i < rightBase && y[i] > height {
		i++
	}

	hi = float64(i)
	if y[i] < height {
		hi -= (height - y[i]) / (y[i-1] - y[i])
	}

	return lo, hi
}
