// Package specio reads spectra from CSV exports and writes pipeline outputs
// back out as CSV. Input files may be compressed and may use any common
// delimiter; both are detected rather than configured.
package specio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/spectrakit/spectrakit"
)

var ErrNoSamples = errors.New("specio: no samples in input")

type spectrumRow struct {
	Wavenumber float64 `csv:"wavenumber"`
	Absorbance float64 `csv:"absorbance"`
}

// ReadSpectrum loads a spectrum from a CSV file with "wavenumber" and
// "absorbance" header columns.
func ReadSpectrum(path string) (spectrakit.Curve, error) {
	data, err := readFileMaybeCompressed(path)
	if err != nil {
		return spectrakit.Curve{}, err
	}

	delim := spectrakit.DetermineDelimiter(bytes.NewReader(data))

	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = delim
		r.TrimLeadingSpace = true

		return r
	})

	rows := []*spectrumRow{}
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return spectrakit.Curve{}, pfx.Err(err)
	}

	if len(rows) == 0 {
		return spectrakit.Curve{}, ErrNoSamples
	}

	x := make([]float64, len(rows))
	y := make([]float64, len(rows))

	for i, row := range rows {
		x[i] = row.Wavenumber
		y[i] = row.Absorbance
	}

	return spectrakit.NewCurve(x, y)
}

// ReadXY loads any two-column numeric CSV file as a curve, regardless of its
// header names. A single leading row that does not parse as numbers is
// treated as a header and skipped. Useful for second-derivative exports,
// whose column naming varies by instrument software.
func ReadXY(path string) (spectrakit.Curve, error) {
	data, err := readFileMaybeCompressed(path)
	if err != nil {
		return spectrakit.Curve{}, err
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = spectrakit.DetermineDelimiter(bytes.NewReader(data))
	r.TrimLeadingSpace = true

	var x, y []float64

	for i := 0; ; i++ {
		line, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return spectrakit.Curve{}, pfx.Err(err)
		}

		if len(line) < 2 {
			return spectrakit.Curve{}, pfx.Err(errors.New("specio: expected at least 2 columns"))
		}

		xv, errX := strconv.ParseFloat(line[0], 64)
		yv, errY := strconv.ParseFloat(line[1], 64)

		if errX != nil || errY != nil {
			if i == 0 {
				// Header row.
				continue
			}

			if errX != nil {
				return spectrakit.Curve{}, pfx.Err(errX)
			}

			return spectrakit.Curve{}, pfx.Err(errY)
		}

		x = append(x, xv)
		y = append(y, yv)
	}

	if len(x) == 0 {
		return spectrakit.Curve{}, ErrNoSamples
	}

	return spectrakit.NewCurve(x, y)
}

func readFileMaybeCompressed(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	r, err := spectrakit.MaybeDecompress(f)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return data, nil
}
