package demo

import (
	"fmt"

	"github.com/ddnet-go/twnet/errs"
	"github.com/ddnet-go/twnet/warn"
)

const (
	chunkTypeFlagTickmarker = 0x80
	chunkTickFlagKeyframe   = 0x40
	chunkTickFlagInlineTick = 0x20 // v5 only

	chunkTickMaskTickV3 = 0x3F
	chunkTickMaskTickV5 = 0x1F

	chunkMaskType = 0x60
	chunkMaskSize = 0x1F

	chunkTypeUnknown       = 0x00
	chunkTypeSnapshot      = 0x20
	chunkTypeMessage       = 0x40
	chunkTypeSnapshotDelta = 0x60

	chunkSizeOneByteFollows  = 0x1E
	chunkSizeTwoBytesFollow  = 0x1F
	chunkSizeLiteralMax      = 0x1D
	chunkSizeOverlongOneByte = 30
	chunkSizeOverlongTwoByte = 256
)

// ChunkType distinguishes payload chunks from tick markers.
type ChunkType int

const (
	ChunkUnknown ChunkType = iota
	ChunkSnapshot
	ChunkMessage
	ChunkSnapshotDelta
)

// TickMarker is a tick boundary in the chunk stream. Keyframe marks a
// full-snapshot tick; Tick is always the absolute tick number, regardless
// of whether the wire form carried it as an inline delta or an absolute
// value.
type TickMarker struct {
	Keyframe bool
	Tick     int32
}

// PayloadChunk is a non-tickmarker chunk carrying snapshot/delta/message
// bytes.
type PayloadChunk struct {
	Type ChunkType
	Data []byte
}

// Chunk is either a TickMarker or a PayloadChunk; exactly one of the two
// pointer fields is non-nil.
type Chunk struct {
	TickMarker *TickMarker
	Payload    *PayloadChunk
}

// decodeChunk parses one chunk from buf at the current tick, returning the
// chunk and the number of bytes consumed. previousTick is used only by
// tick markers: to resolve an inline tick delta into an absolute tick and
// to warn about a tick that does not increase.
func decodeChunk(buf []byte, version Version, previousTick int32, sink warn.Sink[Warning]) (Chunk, int, error) {
	if len(buf) < 1 {
		return Chunk{}, 0, fmt.Errorf("demo: chunk: %w", errs.ErrUnexpectedEnd)
	}

	b := buf[0]

	if b&chunkTypeFlagTickmarker != 0 {
		return decodeTickmarker(buf, version, previousTick, sink)
	}

	return decodePayload(buf, sink)
}

func decodeTickmarker(buf []byte, version Version, previousTick int32, sink warn.Sink[Warning]) (Chunk, int, error) {
	b := buf[0]
	keyframe := b&chunkTickFlagKeyframe != 0

	off := 1

	var (
		tick      int32
		delta     bool
		deltaBits int32
	)

	if version == Version5 {
		if b&chunkTickFlagInlineTick != 0 {
			deltaBits = int32(b & chunkTickMaskTickV5)
			delta = true
		} else {
			if b&chunkTickMaskTickV5 != 0 {
				sink.Warn(Warning{Kind: WarnNonZeroTickmarkerPadding})
			}

			if len(buf) < off+4 {
				return Chunk{}, 0, fmt.Errorf("demo: tickmarker: %w", errs.ErrUnexpectedEnd)
			}

			tick = int32(be.Uint32(buf[off : off+4]))
			off += 4
		}
	} else {
		bits := int32(b & chunkTickMaskTickV3)
		if bits != 0 {
			deltaBits = bits
			delta = true
		} else {
			// Deviating from the reference implementation: a zero inline
			// delta and an absolute tick both read the following 4 bytes,
			// mirroring a long-standing quirk real v3/v4 demo files depend
			// on for interop.
			if len(buf) < off+4 {
				return Chunk{}, 0, fmt.Errorf("demo: tickmarker: %w", errs.ErrUnexpectedEnd)
			}

			tick = int32(be.Uint32(buf[off : off+4]))
			off += 4
		}
	}

	if delta {
		if keyframe {
			sink.Warn(Warning{Kind: WarnNonAbsoluteTickMarkerTick})
		}

		tick = previousTick + deltaBits
	}

	if previousTick != 0 && tick <= previousTick {
		sink.Warn(Warning{Kind: WarnNonIncreasingTick})
	}

	return Chunk{TickMarker: &TickMarker{Keyframe: keyframe, Tick: tick}}, off, nil
}

func decodePayload(buf []byte, sink warn.Sink[Warning]) (Chunk, int, error) {
	b := buf[0]
	off := 1

	var typ ChunkType

	switch b & chunkMaskType {
	case chunkTypeUnknown:
		sink.Warn(Warning{Kind: WarnUnknownChunkType})

		typ = ChunkUnknown
	case chunkTypeSnapshot:
		typ = ChunkSnapshot
	case chunkTypeMessage:
		typ = ChunkMessage
	case chunkTypeSnapshotDelta:
		typ = ChunkSnapshotDelta
	}

	sizeBits := int(b & chunkMaskSize)

	var size int

	switch sizeBits {
	case chunkSizeOneByteFollows:
		if len(buf) < off+1 {
			return Chunk{}, 0, fmt.Errorf("demo: chunk size: %w", errs.ErrUnexpectedEnd)
		}

		size = int(buf[off])
		off++

		if size < chunkSizeOverlongOneByte {
			sink.Warn(Warning{Kind: WarnOverlongChunkSizeEncoding})
		}
	case chunkSizeTwoBytesFollow:
		if len(buf) < off+2 {
			return Chunk{}, 0, fmt.Errorf("demo: chunk size: %w", errs.ErrUnexpectedEnd)
		}
		// The two-byte size extension is little-endian, unlike every other
		// multi-byte field in the demo header.
		size = int(buf[off]) | int(buf[off+1])<<8
		off += 2

		if size < chunkSizeOverlongTwoByte {
			sink.Warn(Warning{Kind: WarnOverlongChunkSizeEncoding})
		}
	default:
		size = sizeBits
	}

	if len(buf) < off+size {
		return Chunk{}, 0, fmt.Errorf("demo: chunk payload: %w", errs.ErrUnexpectedEnd)
	}

	data := make([]byte, size)
	copy(data, buf[off:off+size])
	off += size

	return Chunk{Payload: &PayloadChunk{Type: typ, Data: data}}, off, nil
}

// encodeTickmarker serializes a tick marker. For version 5 it always uses
// the absolute-tick form when the marker is a keyframe, the delta from
// previousTick does not fit in 5 bits, or previousTick is unknown
// (hasPrevious false); otherwise it uses the cheaper inline-delta form. Versions 3/4 always emit the absolute
// form, matching the write side used by reference encoders (the 6-bit
// inline delta form exists on the read side for interop but reference
// writers do not emit it for keyframes and this package does not emit it
// on write either, to stay unambiguous).
func encodeTickmarker(version Version, m TickMarker, previousTick int32, hasPrevious bool) []byte {
	b := byte(chunkTypeFlagTickmarker)
	if m.Keyframe {
		b |= chunkTickFlagKeyframe
	}

	if version == Version5 && hasPrevious && !m.Keyframe {
		delta := m.Tick - previousTick
		if delta >= 0 && delta <= chunkTickMaskTickV5 {
			b |= chunkTickFlagInlineTick | byte(delta)

			return []byte{b}
		}
	}

	out := make([]byte, 5)
	out[0] = b
	be.PutUint32(out[1:5], uint32(m.Tick))

	return out
}

// encodePayload serializes a payload chunk using the most compact size
// encoding that fits.
func encodePayload(typ ChunkType, data []byte) []byte {
	var typeBits byte

	switch typ {
	case ChunkSnapshot:
		typeBits = chunkTypeSnapshot
	case ChunkMessage:
		typeBits = chunkTypeMessage
	case ChunkSnapshotDelta:
		typeBits = chunkTypeSnapshotDelta
	default:
		typeBits = chunkTypeUnknown
	}

	n := len(data)

	switch {
	case n <= chunkSizeLiteralMax:
		out := make([]byte, 1+n)
		out[0] = typeBits | byte(n)
		copy(out[1:], data)

		return out
	case n < chunkSizeOverlongTwoByte:
		out := make([]byte, 2+n)
		out[0] = typeBits | chunkSizeOneByteFollows
		out[1] = byte(n)
		copy(out[2:], data)

		return out
	default:
		out := make([]byte, 3+n)
		out[0] = typeBits | chunkSizeTwoBytesFollow
		out[1] = byte(n)
		out[2] = byte(n >> 8)
		copy(out[3:], data)

		return out
	}
}
