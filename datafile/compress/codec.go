package compress

// Compressor compresses a data-section blob before it's written to a
// datafile, demo or teehistorian file.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses Compressor, given the original uncompressed
// length so the destination buffer can be sized exactly (spec §4.I: v4
// data offsets are accompanied by an uncompressed-size table).
type Decompressor interface {
	Decompress(data []byte, uncompressedSize int) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}
