package specio

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spectrakit/spectrakit"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestReadSpectrum(t *testing.T) {
	path := writeTempFile(t, "spectrum.csv", []byte("wavenumber,absorbance\n1600.5,0.1\n1601,0.25\n1601.5,0.2\n"))

	c, err := ReadSpectrum(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.Len() != 3 {
		t.Fatalf("got %d samples, expected 3", c.Len())
	}

	if c.X[0] != 1600.5 || c.Y[1] != 0.25 {
		t.Errorf("unexpected values: %+v", c)
	}
}

func TestReadSpectrumGzip(t *testing.T) {
	var buf bytes.Buffer

	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte("wavenumber,absorbance\n1600,0.1\n1601,0.2\n")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := writeTempFile(t, "spectrum.csv.gz", buf.Bytes())

	c, err := ReadSpectrum(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.Len() != 2 || c.X[1] != 1601 {
		t.Errorf("unexpected curve from gzipped input: %+v", c)
	}
}

func TestReadXYSkipsHeader(t *testing.T) {
	path := writeTempFile(t, "deriv.csv", []byte("wn,d2\n1600,-0.5\n1601,0.5\n"))

	c, err := ReadXY(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.Len() != 2 || c.Y[0] != -0.5 {
		t.Errorf("unexpected curve: %+v", c)
	}
}

func TestReadXYHeaderless(t *testing.T) {
	path := writeTempFile(t, "deriv.csv", []byte("1600,-0.5\n1601,0.5\n1602,-0.25\n"))

	c, err := ReadXY(path)
	if err != nil {
		t.Fatal(err)
	}

	if c.Len() != 3 {
		t.Errorf("got %d samples, expected 3", c.Len())
	}
}

func TestReadEmptyInput(t *testing.T) {
	path := writeTempFile(t, "empty.csv", []byte("wavenumber,absorbance\n"))

	if _, err := ReadSpectrum(path); !errors.Is(err, ErrNoSamples) {
		t.Errorf("got %v, expected ErrNoSamples", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	c := spectrakit.Curve{
		X: []float64{1600, 1600.5, 1601},
		Y: []float64{0.1, 0.15, 0.125},
	}

	var buf bytes.Buffer
	if err := WriteCurve(&buf, c, "wavenumber", "absorbance"); err != nil {
		t.Fatal(err)
	}

	path := writeTempFile(t, "roundtrip.csv", buf.Bytes())

	got, err := ReadSpectrum(path)
	if err != nil {
		t.Fatal(err)
	}

	if got.Len() != c.Len() {
		t.Fatalf("got %d samples, expected %d", got.Len(), c.Len())
	}

	for i := range c.X {
		if got.X[i] != c.X[i] || got.Y[i] != c.Y[i] {
			t.Errorf("sample %d: got (%g, %g), want (%g, %g)", i, got.X[i], got.Y[i], c.X[i], c.Y[i])
		}
	}
}
