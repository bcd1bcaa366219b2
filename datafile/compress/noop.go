package compress

// NoopCodec passes data through unchanged. It backs version-3 datafiles,
// whose data blob is stored raw (spec §4.I).
type NoopCodec struct{}

var _ Codec = NoopCodec{}

// NewNoopCodec returns a Codec that performs no compression.
func NewNoopCodec() NoopCodec { return NoopCodec{} }

func (NoopCodec) Compress(data []byte) ([]byte, error) { return data, nil }

func (NoopCodec) Decompress(data []byte, _ int) ([]byte, error) { return data, nil }
