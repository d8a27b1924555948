package spectrakit

import (
	"math"
	"testing"
)

// syntheticSpectrum builds a raw spectrum and its analytic second derivative:
// a Gaussian absorption band at 1655 on a gently sloped linear baseline,
// sampled every 0.5 wavenumbers from 1600 to 1700. The second derivative of
// the band has the classic shape of a strong negative center lobe flanked by
// positive side lobes, which is exactly what the peak detector consumes.
func syntheticSpectrum() (deriv, raw Curve) {
	const (
		center     = 1655.0
		derivSigma = 3.0
		rawSigma   = 2.0
		rawAmp     = 0.5
	)

	for wv := 1600.0; wv <= 1700.0; wv += 0.5 {
		d := wv - center

		deriv.X = append(deriv.X, wv)
		s2 := derivSigma * derivSigma
		deriv.Y = append(deriv.Y, (d*d-s2)/(s2*s2)*math.Exp(-d*d/(2*s2)))

		raw.X = append(raw.X, wv)
		base := 0.001*(wv-1600) + 0.1
		raw.Y = append(raw.Y, base+rawAmp*math.Exp(-d*d/(2*rawSigma*rawSigma)))
	}

	return deriv, raw
}

func TestEstimateBaselineRoundTrip(t *testing.T) {
	deriv, raw := syntheticSpectrum()

	res, err := EstimateBaseline(deriv, raw, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.PeakIndices) != 1 {
		t.Fatalf("expected exactly 1 peak, got %d at %v", len(res.PeakIndices), res.PeakWavenumbers)
	}

	if res.PeakWavenumbers[0] != 1655 {
		t.Errorf("peak at %g, expected 1655", res.PeakWavenumbers[0])
	}

	start, end := res.StartWavenumbers[0], res.EndWavenumbers[0]
	if !(start < 1655 && 1655 < end) {
		t.Fatalf("expected start < 1655 < end, got %g and %g", start, end)
	}

	// The inverted second derivative has its sampled minima 5 wavenumbers
	// from the center, so the exclusion radius is exactly 5.
	if start != 1650 || end != 1660 {
		t.Errorf("width bounds = [%g, %g], expected [1650, 1660]", start, end)
	}

	radius := math.Min(1655-start, end-1655)
	for _, p := range res.Anchors {
		if math.Abs(p.Wavenumber-1655) <= radius {
			t.Errorf("anchor at %g lies inside the exclusion zone (radius %g)", p.Wavenumber, radius)
		}
	}

	// Every sample outside the zone must survive: the spectrum has no
	// duplicate pairs, so counts are exact.
	wantAnchors := 0
	for _, wv := range raw.X {
		if math.Abs(wv-1655) > radius {
			wantAnchors++
		}
	}

	if len(res.Anchors) != wantAnchors {
		t.Errorf("anchor count = %d, expected %d", len(res.Anchors), wantAnchors)
	}

	if res.Baseline.Len() != 1000 {
		t.Fatalf("baseline has %d samples, expected 1000", res.Baseline.Len())
	}

	if res.Baseline.X[0] != 1600 || res.Baseline.X[999] != 1700 {
		t.Errorf("baseline spans [%g, %g], expected [1600, 1700]", res.Baseline.X[0], res.Baseline.X[999])
	}

	// Away from the excluded band the anchors track the true baseline to
	// within the Gaussian's tail amplitude, so the fitted curve should too.
	for i := range res.Baseline.X {
		want := 0.001*(res.Baseline.X[i]-1600) + 0.1
		if math.Abs(res.Baseline.Y[i]-want) > 0.05 {
			t.Fatalf("baseline(%g) = %g, true baseline %g", res.Baseline.X[i], res.Baseline.Y[i], want)
		}
	}
}

func TestEstimateBaselineZeroPeaks(t *testing.T) {
	_, raw := syntheticSpectrum()

	flat := Curve{X: raw.X, Y: make([]float64, raw.Len())}

	res, err := EstimateBaseline(flat, raw, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.PeakIndices) != 0 {
		t.Fatalf("flat second derivative should yield no peaks, got %v", res.PeakIndices)
	}

	// Degenerate case: the anchor table is the whole spectrum.
	if len(res.Anchors) != raw.Len() {
		t.Errorf("anchor count = %d, expected the full spectrum (%d)", len(res.Anchors), raw.Len())
	}

	if res.Baseline.Len() != 1000 {
		t.Errorf("baseline has %d samples, expected 1000", res.Baseline.Len())
	}
}

func TestEstimateBaselineValidatesInputs(t *testing.T) {
	_, raw := syntheticSpectrum()

	if _, err := EstimateBaseline(Curve{}, raw, Options{}); err == nil {
		t.Error("empty second derivative: expected an error")
	}

	if _, err := EstimateBaseline(raw, Curve{X: []float64{1}, Y: []float64{1, 2}}, Options{}); err == nil {
		t.Error("mismatched raw spectrum: expected an error")
	}
}

func TestCorrectSpectrum(t *testing.T) {
	raw := Curve{}
	for wv := 0.0; wv <= 200; wv++ {
		raw.X = append(raw.X, wv)
		raw.Y = append(raw.Y, 0.5)
	}

	grid := make([]float64, 1000)
	level := make([]float64, 1000)
	for i := range grid {
		grid[i] = 200 * float64(i) / 999
		level[i] = 0.5
	}

	corrected, err := CorrectSpectrum(raw, Curve{X: grid, Y: level})
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range corrected.Y {
		if v != 0 {
			t.Fatalf("corrected[%d] = %g, expected 0", i, v)
		}
	}
}

func TestCurveValidation(t *testing.T) {
	if _, err := NewCurve(nil, nil); err != ErrEmptyInput {
		t.Errorf("got %v, expected ErrEmptyInput", err)
	}

	if _, err := NewCurve([]float64{1, 2}, []float64{1}); err != ErrLengthMismatch {
		t.Errorf("got %v, expected ErrLengthMismatch", err)
	}

	c := Curve{X: []float64{1, 2, 2}, Y: []float64{1, 2, 3}}
	if c.StrictlyIncreasing() {
		t.Error("tied wavenumbers reported as strictly increasing")
	}

	c = Curve{X: []float64{1, 2, 3}, Y: []float64{1, 2, 3}}
	if !c.StrictlyIncreasing() {
		t.Error("ascending wavenumbers reported as non-increasing")
	}
}
