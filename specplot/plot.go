// Package specplot renders diagnostic charts for baseline runs. Plotting is
// a side effect for humans; nothing in the numeric pipeline depends on it.
package specplot

import (
	"bytes"
	"os"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/spectrakit/spectrakit"
	"github.com/spectrakit/spectrakit/anchors"
)

// RenderBaseline writes a PNG overlaying the raw spectrum, the detected peak
// markers, the surviving anchor points, and the fitted baseline. Peak marker
// slices may be empty (the zero-peak case); their series are then omitted.
func RenderBaseline(filename string, raw, baseline spectrakit.Curve, pts []anchors.Point, peakWv, peakAbs []float64) error {
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "spectrum",
			XValues: raw.X,
			YValues: raw.Y,
		},
		chart.ContinuousSeries{
			Name:    "baseline",
			XValues: baseline.X,
			YValues: baseline.Y,
			Style: chart.Style{
				StrokeColor: chart.ColorGreen,
			},
		},
	}

	if len(pts) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "anchor points",
			XValues: anchors.Wavenumbers(pts),
			YValues: anchors.Absorbances(pts),
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    2,
				DotColor:    chart.ColorBlue,
			},
		})
	}

	if len(peakWv) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name:    "peaks",
			XValues: peakWv,
			YValues: peakAbs,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    chart.ColorRed,
			},
		})
	}

	graph := chart.Chart{
		Width:  1280,
		Height: 720,
		XAxis: chart.XAxis{
			Name: "wavenumber",
		},
		YAxis: chart.YAxis{
			Name: "absorbance",
		},
		Series: series,
	}

	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	// Render to a byte buffer first so a render failure leaves no partial
	// file behind.
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return err
	}

	outFile, err := os.Create(filename)
	if err != nil {
		return err
	}

	if _, err := buffer.WriteTo(outFile); err != nil {
		outFile.Close()
		return err
	}

	return outFile.Close()
}
