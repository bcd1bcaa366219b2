package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/ddnet-go/twnet/errs"
)

// ZlibCodec is the mandatory codec for version-4 datafile data blobs
// (spec §4.I).
type ZlibCodec struct{}

var _ Codec = ZlibCodec{}

// NewZlibCodec returns a zlib Codec at the default compression level.
func NewZlibCodec() ZlibCodec { return ZlibCodec{} }

// Compress zlib-deflates data.
func (ZlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("compress: zlib write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compress: zlib close: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress zlib-inflates data into a buffer sized exactly to
// uncompressedSize, returning errs.ErrCompression if the inflated length
// doesn't match (spec §4.I validator requirement).
func (ZlibCodec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("compress: %w: %w", errs.ErrCompression, err)
	}
	defer r.Close()

	out := make([]byte, uncompressedSize)

	n, err := io.ReadFull(r, out)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("compress: %w: %w", errs.ErrCompression, err)
	}

	if n != uncompressedSize {
		return nil, fmt.Errorf("compress: %w: got %d bytes, want %d", errs.ErrCompression, n, uncompressedSize)
	}

	// A well-formed stream has nothing left to read; a short extra byte
	// would mean the recorded uncompressed size was wrong.
	var extra [1]byte
	if n2, _ := r.Read(extra[:]); n2 != 0 {
		return nil, fmt.Errorf("compress: %w: trailing data after declared size", errs.ErrCompression)
	}

	if uncompressedSize == 0 {
		return nil, nil
	}

	return out, nil
}
