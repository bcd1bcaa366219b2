package demo

// Writer accumulates a chunk stream and assembles it behind a demo header.
type Writer struct {
	header Header

	buf []byte

	tick    int32
	hasTick bool
}

// NewWriter starts a new demo file using the given header. TimelineMarkers
// and Length may be filled in or amended after writing; Bytes always
// serializes the header's current field values.
func NewWriter(header Header) *Writer {
	return &Writer{header: header}
}

// WriteTickMarker appends a tick boundary to the stream.
func (w *Writer) WriteTickMarker(keyframe bool, tick int32) {
	w.buf = append(w.buf, encodeTickmarker(w.header.Version, TickMarker{Keyframe: keyframe, Tick: tick}, w.tick, w.hasTick)...)
	w.tick = tick
	w.hasTick = true
}

// WriteChunk appends a payload chunk to the stream.
func (w *Writer) WriteChunk(typ ChunkType, data []byte) {
	w.buf = append(w.buf, encodePayload(typ, data)...)
}

// Bytes serializes the header followed by the accumulated chunk stream.
func (w *Writer) Bytes() []byte {
	out := WriteHeader(w.header)

	return append(out, w.buf...)
}
