package compress

import "github.com/klauspost/compress/s2"

// S2Codec is a supplemental archival codec, not used by the wire/on-disk
// datafile format itself but available to callers that store compacted
// teehistorian extension items (spec §4.J's extension-UUID-addressable
// items) out of band.
type S2Codec struct{}

var _ Codec = S2Codec{}

// NewS2Codec returns an S2 Codec.
func NewS2Codec() S2Codec { return S2Codec{} }

func (S2Codec) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (S2Codec) Decompress(data []byte, _ int) ([]byte, error) {
	return s2.Decode(nil, data)
}
