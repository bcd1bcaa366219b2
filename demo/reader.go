package demo

import "github.com/ddnet-go/twnet/warn"

// Reader walks the chunk stream of an in-memory demo file after its header
// has been parsed.
type Reader struct {
	Header Header

	buf  []byte
	pos  int
	tick int32
	sink warn.Sink[Warning]
}

// Open parses the header and returns a Reader positioned at the start of
// the chunk stream.
func Open(buf []byte, sink warn.Sink[Warning]) (*Reader, error) {
	if sink == nil {
		sink = warn.Discard[Warning]{}
	}

	h, n, err := ReadHeader(buf, sink)
	if err != nil {
		return nil, err
	}

	return &Reader{Header: h, buf: buf, pos: n, sink: sink}, nil
}

// Next returns the next chunk in the stream, or ok=false once the buffer
// is exhausted.
func (r *Reader) Next() (Chunk, bool, error) {
	if r.pos >= len(r.buf) {
		return Chunk{}, false, nil
	}

	chunk, n, err := decodeChunk(r.buf[r.pos:], r.Header.Version, r.tick, r.sink)
	if err != nil {
		return Chunk{}, false, err
	}

	r.pos += n

	if chunk.TickMarker != nil {
		r.tick = chunk.TickMarker.Tick
	}

	return chunk, true, nil
}
