package conn

import (
	"fmt"

	"github.com/ddnet-go/twnet/errs"
)

// chunkFlags are the 2 flag bits at the top of a chunk header's first
// byte.
type chunkFlags uint8

const (
	chunkFlagVital  chunkFlags = 1 << 6
	chunkFlagResend chunkFlags = 1 << 7
)

const (
	chunkHeaderSizeVital    = 3
	chunkHeaderSizeNonVital = 2
	maxChunkSize            = 1 << 10
)

// Chunk is one decoded framing unit within a connected packet's payload.
type Chunk struct {
	Vital  bool
	Resend bool
	Seq    uint16 // valid only if Vital
	Data   []byte
}

// appendChunk writes a chunk's header and data onto out.
func appendChunk(out []byte, vital, resend bool, seq uint16, data []byte) ([]byte, error) {
	if len(data) >= maxChunkSize {
		return nil, fmt.Errorf("conn: chunk: %w", errs.ErrTooLongData)
	}

	var flags chunkFlags
	if vital {
		flags |= chunkFlagVital
	}
	if resend {
		flags |= chunkFlagResend
	}

	size := uint16(len(data))
	b0 := byte(flags) | byte(size>>4&0x3f)

	if vital {
		seq &= seqMask
		b1 := byte(seq>>8&0x0f)<<4 | byte(size&0x0f)
		b2 := byte(seq)
		out = append(out, b0, b1, b2)
	} else {
		b1 := byte(size & 0x0f)
		out = append(out, b0, b1)
	}

	out = append(out, data...)

	return out, nil
}

// parseChunks splits a connected packet's payload into its chunks.
func parseChunks(payload []byte, numChunks uint8) ([]Chunk, error) {
	chunks := make([]Chunk, 0, numChunks)
	pos := 0

	for i := 0; i < int(numChunks); i++ {
		if pos+chunkHeaderSizeNonVital > len(payload) {
			return nil, fmt.Errorf("conn: chunk %d: %w", i, errs.ErrMalformedChunk)
		}

		b0 := payload[pos]
		b1 := payload[pos+1]
		flags := chunkFlags(b0 & 0xc0)
		vital := flags&chunkFlagVital != 0
		resend := flags&chunkFlagResend != 0
		size := int(b0&0x3f)<<4 | int(b1&0x0f)

		headerLen := chunkHeaderSizeNonVital
		var seq uint16

		if vital {
			headerLen = chunkHeaderSizeVital
			if pos+headerLen > len(payload) {
				return nil, fmt.Errorf("conn: chunk %d: %w", i, errs.ErrMalformedChunk)
			}
			b2 := payload[pos+2]
			seq = uint16(b1>>4)<<8 | uint16(b2)
		}

		start := pos + headerLen
		end := start + size
		if end > len(payload) {
			return nil, fmt.Errorf("conn: chunk %d: %w", i, errs.ErrMalformedChunk)
		}

		chunks = append(chunks, Chunk{Vital: vital, Resend: resend, Seq: seq, Data: payload[start:end]})
		pos = end
	}

	return chunks, nil
}
