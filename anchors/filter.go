// Package anchors classifies every raw spectral sample as either a baseline
// anchor point or part of a peak region, by comparing its distance to the
// nearest detected peak against that peak's exclusion radius.
package anchors

import (
	"errors"
	"math"
	"sort"
)

// DefaultAdjustmentFactor leaves each peak's exclusion radius at its measured
// smaller half-width.
const DefaultAdjustmentFactor = 1.0

var (
	ErrEmptySpectrum  = errors.New("anchors: empty raw spectrum")
	ErrLengthMismatch = errors.New("anchors: wavenumber and absorbance slices differ in length")
	ErrPeakMismatch   = errors.New("anchors: peak wavenumber, start, and end slices differ in length")
)

// Point is a raw spectral sample judged to lie on the baseline.
// OriginalIndex is the position the point held in the collected anchor list
// before deduplication and sorting, kept for traceability.
type Point struct {
	Wavenumber    float64
	Absorbance    float64
	OriginalIndex int
}

// SmallerHalfWidths returns, per peak, the smaller of its two half-widths:
// min(peak−start, end−peak). Asymmetric peaks therefore get the tighter of
// the two radii, which keeps the exclusion zone from swallowing baseline
// samples on the peak's shallow side.
func SmallerHalfWidths(peakWavenumbers, start, end []float64) []float64 {
	out := make([]float64, len(peakWavenumbers))

	for i := range peakWavenumbers {
		left := peakWavenumbers[i] - start[i]
		right := end[i] - peakWavenumbers[i]

		out[i] = math.Min(left, right)
	}

	return out
}

// Filter classifies the raw spectrum against the detected peaks. A sample
// survives as an anchor point when its distance to the nearest peak exceeds
// that peak's smaller half-width scaled by adjFactor. The nearest peak is the
// arg-min of absolute wavenumber distance with ties broken by the lowest peak
// index; that tie-break decides classification for samples exactly halfway
// between two peaks and is part of the contract.
//
// With no peaks there is nothing to exclude, so every raw sample is an anchor
// point and the degenerate baseline is the spectrum itself.
//
// The result is deduplicated on exact (wavenumber, absorbance) pairs, keeping
// first occurrences, and sorted ascending by wavenumber.
func Filter(start, end, peakWavenumbers, rawX, rawY []float64, adjFactor float64) ([]Point, error) {
	if len(rawX) == 0 || len(rawY) == 0 {
		return nil, ErrEmptySpectrum
	}

	if len(rawX) != len(rawY) {
		return nil, ErrLengthMismatch
	}

	if len(start) != len(peakWavenumbers) || len(end) != len(peakWavenumbers) {
		return nil, ErrPeakMismatch
	}

	kept := make([]Point, 0, len(rawX))

	if len(peakWavenumbers) == 0 {
		for i := range rawX {
			kept = append(kept, Point{Wavenumber: rawX[i], Absorbance: rawY[i], OriginalIndex: i})
		}

		return postProcess(kept), nil
	}

	radii := SmallerHalfWidths(peakWavenumbers, start, end)

	for i := range rawX {
		nearest := 0
		best := math.Abs(peakWavenumbers[0] - rawX[i])

		for j := 1; j < len(peakWavenumbers); j++ {
			if d := math.Abs(peakWavenumbers[j] - rawX[i]); d < best {
				best = d
				nearest = j
			}
		}

		if best > radii[nearest]*adjFactor {
			kept = append(kept, Point{Wavenumber: rawX[i], Absorbance: rawY[i], OriginalIndex: len(kept)})
		}
	}

	return postProcess(kept), nil
}

// postProcess drops exact duplicate (wavenumber, absorbance) pairs, keeping
// the first occurrence, and stably sorts the survivors by wavenumber. Running
// it on its own output is a no-op.
func postProcess(pts []Point) []Point {
	type pair struct{ wv, ab float64 }

	seen := make(map[pair]bool, len(pts))
	out := make([]Point, 0, len(pts))

	for _, p := range pts {
		k := pair{p.Wavenumber, p.Absorbance}
		if seen[k] {
			continue
		}

		seen[k] = true
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Wavenumber < out[j].Wavenumber
	})

	return out
}

// Wavenumbers extracts the wavenumber column of an anchor table.
func Wavenumbers(pts []Point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Wavenumber
	}

	return out
}

// Absorbances extracts the absorbance column of an anchor table.
func Absorbances(pts []Point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Absorbance
	}

	return out
}
