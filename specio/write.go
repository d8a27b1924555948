package specio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/carbocation/pfx"

	"github.com/spectrakit/spectrakit"
	"github.com/spectrakit/spectrakit/anchors"
)

// WriteCurve emits a curve as a two-column CSV with the given header names.
func WriteCurve(w io.Writer, c spectrakit.Curve, xName, yName string) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{xName, yName}); err != nil {
		return pfx.Err(err)
	}

	for i := range c.X {
		record := []string{
			strconv.FormatFloat(c.X[i], 'g', -1, 64),
			strconv.FormatFloat(c.Y[i], 'g', -1, 64),
		}

		if err := cw.Write(record); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// WriteAnchors emits an anchor table as CSV, original pre-sort index
// included.
func WriteAnchors(w io.Writer, pts []anchors.Point) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"wavenumber", "absorbance", "original_index"}); err != nil {
		return pfx.Err(err)
	}

	for _, p := range pts {
		record := []string{
			strconv.FormatFloat(p.Wavenumber, 'g', -1, 64),
			strconv.FormatFloat(p.Absorbance, 'g', -1, 64),
			strconv.Itoa(p.OriginalIndex),
		}

		if err := cw.Write(record); err != nil {
			return pfx.Err(err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return pfx.Err(err)
	}

	return nil
}
