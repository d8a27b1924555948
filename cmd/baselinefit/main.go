// baselinefit runs the full anchor-point pipeline over one spectrum: it
// detects peaks in the second derivative, filters the raw spectrum down to
// baseline anchor points, fits a spline through them, and writes the fitted
// baseline (and optionally the baseline-corrected spectrum) as CSV.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/spectrakit/spectrakit"
	_ "github.com/spectrakit/spectrakit/buildinfoprint"
	"github.com/spectrakit/spectrakit/peaks"
	"github.com/spectrakit/spectrakit/specio"
	"github.com/spectrakit/spectrakit/specplot"
)

func main() {
	var spectrumFile, derivFile, outFile, correctedFile, plotFile string
	var opt spectrakit.Options

	flag.StringVar(&spectrumFile, "spectrum", "", "CSV with 'wavenumber' and 'absorbance' columns holding the raw spectrum. May be compressed.")
	flag.StringVar(&derivFile, "deriv", "", "Two-column CSV holding the second derivative of the spectrum (wavenumber, value). May be compressed.")
	flag.StringVar(&outFile, "out", "", "Output CSV for the fitted baseline. If not specified, writes to stdout.")
	flag.StringVar(&correctedFile, "corrected", "", "Optional output CSV for the baseline-corrected spectrum.")
	flag.StringVar(&plotFile, "plot", "", "Optional output PNG overlaying spectrum, peaks, anchor points, and baseline.")
	flag.Float64Var(&opt.Threshold, "threshold", 0, "Peak prominence threshold as a fraction of the maximum inverted second derivative. 0 uses the default (0.15).")
	flag.Float64Var(&opt.AdjustmentFactor, "adj", 0, "Scale factor applied to every peak's exclusion radius. 0 uses the default (1).")
	flag.IntVar(&opt.Degree, "degree", 0, "Baseline spline degree, 1-5. 0 uses the default (3).")
	flag.Float64Var(&opt.Smooth, "smooth", 0, "Residual budget of the baseline spline. 0 fits an interpolating spline.")
	flag.Parse()

	if spectrumFile == "" || derivFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(spectrumFile, derivFile, outFile, correctedFile, plotFile, opt); err != nil {
		log.Fatalln(err)
	}
}

func run(spectrumFile, derivFile, outFile, correctedFile, plotFile string, opt spectrakit.Options) error {
	raw, err := specio.ReadSpectrum(spectrumFile)
	if err != nil {
		return err
	}

	deriv, err := specio.ReadXY(derivFile)
	if err != nil {
		return err
	}

	res, err := spectrakit.EstimateBaseline(deriv, raw, opt)
	if err != nil {
		return err
	}

	log.Printf("%d peaks, %d anchor points (of %d raw samples)", len(res.PeakIndices), len(res.Anchors), raw.Len())

	var out io.WriteCloser = os.Stdout
	if outFile != "" {
		out, err = os.Create(outFile)
		if err != nil {
			return err
		}
	}

	if err := specio.WriteCurve(out, res.Baseline, "wavenumber", "absorbance"); err != nil {
		return err
	}

	if outFile != "" {
		if err := out.Close(); err != nil {
			return err
		}
	}

	if correctedFile != "" {
		corrected, err := spectrakit.CorrectSpectrum(raw, res.Baseline)
		if err != nil {
			return err
		}

		f, err := os.Create(correctedFile)
		if err != nil {
			return err
		}

		if err := specio.WriteCurve(f, corrected, "wavenumber", "absorbance"); err != nil {
			f.Close()
			return err
		}

		if err := f.Close(); err != nil {
			return err
		}
	}

	if plotFile != "" {
		peakWv, peakAbs, err := peakMarkers(res, raw)
		if err != nil {
			return err
		}

		if err := specplot.RenderBaseline(plotFile, raw, res.Baseline, res.Anchors, peakWv, peakAbs); err != nil {
			return err
		}
	}

	return nil
}

// peakMarkers resolves display positions for the detected peaks. With no
// peaks it returns empty slices rather than an error.
func peakMarkers(res spectrakit.Result, raw spectrakit.Curve) ([]float64, []float64, error) {
	if len(res.PeakWavenumbers) == 0 {
		return nil, nil, nil
	}

	return peaks.Absorbance(res.PeakWavenumbers, raw.X, raw.Y)
}
