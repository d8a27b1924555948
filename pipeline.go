package spectrakit

import (
	"math"

	"github.com/carbocation/pfx"

	"github.com/spectrakit/spectrakit/anchors"
	"github.com/spectrakit/spectrakit/baseline"
	"github.com/spectrakit/spectrakit/peaks"
)

// Options collects the tunable parameters of the baseline pipeline. The zero
// value of each field selects its default.
type Options struct {
	// Threshold scales the prominence floor for peak detection, as a
	// fraction of the maximum inverted second derivative. Default 0.15.
	Threshold float64

	// AdjustmentFactor scales every peak's exclusion radius. Default 1.
	AdjustmentFactor float64

	// Degree of the baseline spline, 1 through 5. Default 3.
	Degree int

	// Smooth is the residual budget of the baseline spline. Zero, the
	// default, fits an interpolating spline.
	Smooth float64
}

func (o Options) withDefaults() Options {
	if o.Threshold == 0 {
		o.Threshold = peaks.DefaultThreshold
	}

	if o.AdjustmentFactor == 0 {
		o.AdjustmentFactor = anchors.DefaultAdjustmentFactor
	}

	if o.Degree == 0 {
		o.Degree = baseline.DefaultDegree
	}

	return o
}

// Result carries the outputs of every stage of a baseline run.
type Result struct {
	PeakIndices      []int
	PeakWavenumbers  []float64
	StartWavenumbers []float64
	EndWavenumbers   []float64
	Anchors          []anchors.Point
	Baseline         Curve
}

// EstimateBaseline runs the full pipeline: peak detection over the second
// derivative, peak width resolution, anchor point filtering of the raw
// spectrum, and spline baseline fitting. When no peak clears the prominence
// threshold the result carries empty peak slices and the anchor table holds
// the entire (deduplicated, sorted) spectrum, so the fitted baseline tracks
// the spectrum itself.
func EstimateBaseline(deriv, raw Curve, opt Options) (Result, error) {
	if err := deriv.Validate(); err != nil {
		return Result{}, pfx.Err(err)
	}

	if err := raw.Validate(); err != nil {
		return Result{}, pfx.Err(err)
	}

	opt = opt.withDefaults()

	indices, wavenumbers, err := peaks.Detect(deriv.X, deriv.Y, opt.Threshold)
	if err != nil {
		return Result{}, pfx.Err(err)
	}

	start, end, err := peaks.Widths(deriv.X, deriv.Y, indices)
	if err != nil {
		return Result{}, pfx.Err(err)
	}

	pts, err := anchors.Filter(start, end, wavenumbers, raw.X, raw.Y, opt.AdjustmentFactor)
	if err != nil {
		return Result{}, pfx.Err(err)
	}

	bx, by, err := baseline.Fit(pts, opt.Degree, opt.Smooth)
	if err != nil {
		return Result{}, pfx.Err(err)
	}

	return Result{
		PeakIndices:      indices,
		PeakWavenumbers:  wavenumbers,
		StartWavenumbers: start,
		EndWavenumbers:   end,
		Anchors:          pts,
		Baseline:         Curve{X: bx, Y: by},
	}, nil
}

// CorrectSpectrum subtracts a fitted baseline from a raw spectrum. Each raw
// sample is matched to the nearest sample of the baseline's uniform grid.
func CorrectSpectrum(raw, fitted Curve) (Curve, error) {
	if err := raw.Validate(); err != nil {
		return Curve{}, pfx.Err(err)
	}

	if err := fitted.Validate(); err != nil {
		return Curve{}, pfx.Err(err)
	}

	n := fitted.Len()
	step := 0.0
	if n > 1 {
		step = (fitted.X[n-1] - fitted.X[0]) / float64(n-1)
	}

	corrected := make([]float64, raw.Len())

	for i, x := range raw.X {
		j := 0
		if step > 0 {
			j = int(math.Round((x - fitted.X[0]) / step))
		}

		if j < 0 {
			j = 0
		}

		if j > n-1 {
			j = n - 1
		}

		corrected[i] = raw.Y[i] - fitted.Y[j]
	}

	return Curve{X: raw.X, Y: corrected}, nil
}
