package compress

import (
	"errors"

	"github.com/pierrec/lz4/v4"
)

// LZ4Codec backs an optional archival compression mode for demo files
// recorded with a "-compact" option (spec §4.J supplement); the live
// wire format never carries lz4, only Huffman or zlib.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

// NewLZ4Codec returns an LZ4 Codec.
func NewLZ4Codec() LZ4Codec { return LZ4Codec{} }

func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	var c lz4.Compressor

	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

func (LZ4Codec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, uncompressedSize)

	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, err
	}
	if n != uncompressedSize {
		return nil, errors.New("compress: lz4 decompressed size mismatch")
	}

	return dst, nil
}
