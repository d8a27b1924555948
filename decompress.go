package spectrakit

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

// CompressionType identifies the compression applied to a spectrum file.
type CompressionType byte

const (
	CompressionInvalid CompressionType = iota
	CompressionNone
	CompressionGzip
	CompressionZip
	CompressionXZ
	CompressionZ
	CompressionBZip2
)

// Magic-byte signatures, per https://stackoverflow.com/a/19127748/199475
var compressionSigs = map[CompressionType][]byte{
	CompressionGzip:  {0x1f, 0x8b, 0x08},
	CompressionZip:   {0x50, 0x4b, 0x03, 0x04},
	CompressionXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	CompressionZ:     {0x1f, 0x9d},
	CompressionBZip2: {0x42, 0x5a, 0x68},
}

// DetectCompression sniffs the compression of a stream from its leading
// bytes. It consumes up to 6 bytes of the reader.
func DetectCompression(r io.Reader) (CompressionType, error) {
	buff := make([]byte, 6)
	if _, err := r.Read(buff); err != nil {
		return CompressionInvalid, err
	}

Outer:
	for ct, sig := range compressionSigs {
		for i := range sig {
			if buff[i] != sig[i] {
				continue Outer
			}
		}

		return ct, nil
	}

	return CompressionNone, nil
}

// MaybeDecompress wraps a spectrum file in the appropriate decompressor, or
// returns the file itself when no known compression is detected. Archived
// exports are common enough that every reader in this module goes through it.
func MaybeDecompress(f *os.File) (io.ReadCloser, error) {
	ct, err := DetectCompression(f)
	if err != nil {
		return nil, err
	}

	// Rewind past the sniffed bytes before handing the file to a
	// decompressor; they all expect to start at the header.
	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}

	switch ct {
	case CompressionGzip:
		return gzip.NewReader(f)
	case CompressionZip:
		return &nopCloser{zipstream.NewReader(f)}, nil
	case CompressionBZip2:
		return &nopCloser{bzip2.NewReader(f)}, nil
	case CompressionXZ:
		r, err := xz.NewReader(f, 0)
		if err != nil {
			return nil, err
		}

		return &nopCloser{r}, nil
	case CompressionZ:
		return zlib.NewReader(f)
	}

	return f, nil
}

// nopCloser upgrades readers that have nothing to close.
type nopCloser struct {
	io.Reader
}

func (nopCloser) Close() error {
	return nil
}
