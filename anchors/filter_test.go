package anchors

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestSmallerHalfWidths(t *testing.T) {
	peaks := []float64{10, 20}
	start := []float64{8, 15}
	end := []float64{14, 22}

	got := SmallerHalfWidths(peaks, start, end)
	want := []float64{2, 2}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestFilterExclusionBoundaryIsStrict(t *testing.T) {
	// One peak at 10 with smaller half-width 2: samples at distance exactly 2
	// are still excluded (the contract is distance > radius, not >=).
	rawX := []float64{5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	rawY := make([]float64, len(rawX))
	for i := range rawY {
		rawY[i] = rawX[i] * 0.1
	}

	pts, err := Filter([]float64{8}, []float64{14}, []float64{10}, rawX, rawY, DefaultAdjustmentFactor)
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{5, 6, 7, 13, 14, 15}
	got := Wavenumbers(pts)

	if !reflect.DeepEqual(got, want) {
		t.Errorf("anchor wavenumbers = %v, want %v", got, want)
	}

	// Completeness: every raw sample is either an anchor or excluded.
	if len(pts)+5 != len(rawX) {
		t.Errorf("anchor count %d + 5 excluded != %d raw samples", len(pts), len(rawX))
	}
}

func TestFilterNearestPeakTieBreaksToFirst(t *testing.T) {
	// Sample at 15 is equidistant from the peaks at 10 and 20. The first
	// peak's radius (1) decides, so the sample survives; had the tie gone to
	// the second peak (radius 5), it would have been excluded.
	peaks := []float64{10, 20}
	start := []float64{9, 15}
	end := []float64{11, 25}

	rawX := []float64{15}
	rawY := []float64{0.5}

	pts, err := Filter(start, end, peaks, rawX, rawY, DefaultAdjustmentFactor)
	if err != nil {
		t.Fatal(err)
	}

	if len(pts) != 1 || pts[0].Wavenumber != 15 {
		t.Errorf("expected the equidistant sample to classify against the first peak and survive, got %v", pts)
	}
}

func TestFilterZeroPeaksKeepsWholeSpectrum(t *testing.T) {
	rawX := []float64{3, 1, 2, 1}
	rawY := []float64{0.3, 0.1, 0.2, 0.1}

	pts, err := Filter(nil, nil, nil, rawX, rawY, DefaultAdjustmentFactor)
	if err != nil {
		t.Fatal(err)
	}

	want := []Point{
		{Wavenumber: 1, Absorbance: 0.1, OriginalIndex: 1},
		{Wavenumber: 2, Absorbance: 0.2, OriginalIndex: 2},
		{Wavenumber: 3, Absorbance: 0.3, OriginalIndex: 0},
	}

	if !reflect.DeepEqual(pts, want) {
		t.Errorf("got %v, want %v", pts, want)
	}
}

func TestFilterPostProcessIdempotent(t *testing.T) {
	pts := []Point{
		{Wavenumber: 3, Absorbance: 0.3, OriginalIndex: 0},
		{Wavenumber: 1, Absorbance: 0.1, OriginalIndex: 1},
		{Wavenumber: 1, Absorbance: 0.1, OriginalIndex: 2},
		{Wavenumber: 2, Absorbance: 0.2, OriginalIndex: 3},
	}

	once := postProcess(pts)
	twice := postProcess(once)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("post-processing is not idempotent: %v vs %v", once, twice)
	}

	if len(once) != 3 {
		t.Errorf("expected duplicate pair removed, got %v", once)
	}

	for i := 1; i < len(once); i++ {
		if once[i].Wavenumber <= once[i-1].Wavenumber {
			t.Errorf("wavenumbers not strictly ascending: %v", once)
		}
	}
}

func TestFilterAdjustmentFactorShrinksAnchorSet(t *testing.T) {
	var rawX, rawY []float64
	for wv := 0.0; wv <= 40; wv++ {
		rawX = append(rawX, wv)
		rawY = append(rawY, math.Sin(wv))
	}

	peaks := []float64{20}
	start := []float64{15}
	end := []float64{23}

	prev := len(rawX) + 1
	for _, adj := range []float64{0.5, 1, 2, 4} {
		pts, err := Filter(start, end, peaks, rawX, rawY, adj)
		if err != nil {
			t.Fatal(err)
		}

		if len(pts) > prev {
			t.Errorf("adjustment factor %g grew the anchor set: %d > %d", adj, len(pts), prev)
		}

		prev = len(pts)
	}
}

func TestFilterInputValidation(t *testing.T) {
	if _, err := Filter(nil, nil, nil, nil, nil, 1); !errors.Is(err, ErrEmptySpectrum) {
		t.Errorf("empty spectrum: got %v, expected ErrEmptySpectrum", err)
	}

	if _, err := Filter(nil, nil, nil, []float64{1, 2}, []float64{1}, 1); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("mismatched spectrum: got %v, expected ErrLengthMismatch", err)
	}

	if _, err := Filter([]float64{1}, nil, []float64{1}, []float64{1}, []float64{1}, 1); !errors.Is(err, ErrPeakMismatch) {
		t.Errorf("mismatched peak slices: got %v, expected ErrPeakMismatch", err)
	}
}
