// anchorpoints emits the anchor-point table for one spectrum: every raw
// sample that survives peak-region exclusion, deduplicated and sorted by
// wavenumber, with its pre-sort index retained.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/spectrakit/spectrakit/anchors"
	_ "github.com/spectrakit/spectrakit/buildinfoprint"
	"github.com/spectrakit/spectrakit/peaks"
	"github.com/spectrakit/spectrakit/specio"
)

func main() {
	var spectrumFile, derivFile, outFile string
	var threshold, adjFactor float64

	flag.StringVar(&spectrumFile, "spectrum", "", "CSV with 'wavenumber' and 'absorbance' columns holding the raw spectrum. May be compressed.")
	flag.StringVar(&derivFile, "deriv", "", "Two-column CSV holding the second derivative of the spectrum (wavenumber, value). May be compressed.")
	flag.StringVar(&outFile, "out", "", "Output CSV for the anchor table. If not specified, writes to stdout.")
	flag.Float64Var(&threshold, "threshold", peaks.DefaultThreshold, "Peak prominence threshold as a fraction of the maximum inverted second derivative.")
	flag.Float64Var(&adjFactor, "adj", anchors.DefaultAdjustmentFactor, "Scale factor applied to every peak's exclusion radius.")
	flag.Parse()

	if spectrumFile == "" || derivFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(spectrumFile, derivFile, outFile, threshold, adjFactor); err != nil {
		log.Fatalln(err)
	}
}

func run(spectrumFile, derivFile, outFile string, threshold, adjFactor float64) error {
	raw, err := specio.ReadSpectrum(spectrumFile)
	if err != nil {
		return err
	}

	deriv, err := specio.ReadXY(derivFile)
	if err != nil {
		return err
	}

	indices, wavenumbers, err := peaks.Detect(deriv.X, deriv.Y, threshold)
	if err != nil {
		return err
	}

	if len(indices) == 0 {
		log.Println("no peaks cleared the threshold; the whole spectrum is baseline")
	}

	start, end, err := peaks.Widths(deriv.X, deriv.Y, indices)
	if err != nil {
		return err
	}

	pts, err := anchors.Filter(start, end, wavenumbers, raw.X, raw.Y, adjFactor)
	if err != nil {
		return err
	}

	var out io.WriteCloser = os.Stdout
	if outFile != "" {
		out, err = os.Create(outFile)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	return specio.WriteAnchors(out, pts)
}
