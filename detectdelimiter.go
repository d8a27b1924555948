package spectrakit

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// DetermineDelimiter returns the single most likely rune delimiting the
// values in the reader, assuming a CSV-like spectrum export. Instrument
// software disagrees on comma versus semicolon versus tab, so sniffing beats
// asking the user.
func DetermineDelimiter(r io.Reader) rune {
	d := detector.New()

	delimiters := d.DetectDelimiter(r, '"')
	if len(delimiters) > 0 {
		return rune(delimiters[0][0])
	}

	return ','
}
