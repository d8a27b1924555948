// peakreport prints a human-readable summary of the peaks detected in a
// spectrum's second derivative: per-peak location, width bounds, exclusion
// radius, and representative absorbance, followed by summary statistics and a
// terminal histogram of anchor-point spacing.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/montanaflynn/stats"

	"github.com/spectrakit/spectrakit/anchors"
	_ "github.com/spectrakit/spectrakit/buildinfoprint"
	"github.com/spectrakit/spectrakit/peaks"
	"github.com/spectrakit/spectrakit/specio"
)

func main() {
	var spectrumFile, derivFile string
	var threshold, adjFactor float64

	flag.StringVar(&spectrumFile, "spectrum", "", "CSV with 'wavenumber' and 'absorbance' columns holding the raw spectrum. May be compressed.")
	flag.StringVar(&derivFile, "deriv", "", "Two-column CSV holding the second derivative of the spectrum (wavenumber, value). May be compressed.")
	flag.Float64Var(&threshold, "threshold", peaks.DefaultThreshold, "Peak prominence threshold as a fraction of the maximum inverted second derivative.")
	flag.Float64Var(&adjFactor, "adj", anchors.DefaultAdjustmentFactor, "Scale factor applied to every peak's exclusion radius.")
	flag.Parse()

	if spectrumFile == "" || derivFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(spectrumFile, derivFile, threshold, adjFactor); err != nil {
		log.Fatalln(err)
	}
}

func run(spectrumFile, derivFile string, threshold, adjFactor float64) error {
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
		fmt.Println("no peaks cleared the threshold")
		return nil
	}

	start, end, err := peaks.Widths(deriv.X, deriv.Y, indices)
	if err != nil {
		return err
	}

	peakWv, peakAbs, err := peaks.Absorbance(wavenumbers, raw.X, raw.Y)
	if err != nil {
		return err
	}

	radii := anchors.SmallerHalfWidths(wavenumbers, start, end)

	fmt.Printf("%-12s %-12s %-12s %-12s %-12s %-12s\n", "peak_wv", "start_wv", "end_wv", "radius", "rep_wv", "rep_abs")
	for i := range wavenumbers {
		fmt.Printf("%-12.3f %-12.3f %-12.3f %-12.3f %-12.3f %-12.5f\n",
			wavenumbers[i], start[i], end[i], radii[i], peakWv[i], peakAbs[i])
	}

	if err := printSummary(radii); err != nil {
		return err
	}

	pts, err := anchors.Filter(start, end, wavenumbers, raw.X, raw.Y, adjFactor)
	if err != nil {
		return err
	}

	return printSpacing(pts, raw.Len())
}

func printSummary(radii []float64) error {
	data := stats.LoadRawData(radii)

	mean, err := data.Mean()
	if err != nil {
		return err
	}

	median, err := data.Median()
	if err != nil {
		return err
	}

	fmt.Printf("\n%d peaks; exclusion radius mean %.3f, median %.3f\n", len(radii), mean, median)

	return nil
}

// printSpacing renders a histogram of the wavenumber gaps between
// consecutive anchor points. Large gaps mark the excluded peak regions.
func printSpacing(pts []anchors.Point, rawCount int) error {
	fmt.Printf("\n%d anchor points (of %d raw samples)\n", len(pts), rawCount)

	if len(pts) < 2 {
		return nil
	}

	gaps := make([]float64, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		gaps = append(gaps, pts[i].Wavenumber-pts[i-1].Wavenumber)
	}

	fmt.Println("anchor spacing:")
	hist := histogram.Hist(10, gaps)

	return histogram.Fprint(os.Stdout, hist, histogram.Linear(40))
}
