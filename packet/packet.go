package packet

import (
	"fmt"

	"github.com/ddnet-go/twnet/errs"
	"github.com/ddnet-go/twnet/huffman"
)

// Kind distinguishes the three shapes a decoded Packet can take.
type Kind int

const (
	KindChunks Kind = iota
	KindControl
	KindConnless
)

// Packet is a decoded connected or connectionless datagram.
type Packet struct {
	Kind Kind

	// Ack and RequestResend are valid for KindChunks and KindControl.
	Ack           uint16
	RequestResend bool

	// NumChunks and Payload (the raw chunk stream) are valid for
	// KindChunks.
	NumChunks uint8
	Payload   []byte

	// Control, CloseReason are valid for KindControl.
	Control     ControlType
	CloseReason []byte

	// Connless is the raw payload for KindConnless.
	Connless []byte
}

// Read parses buf as either a connectionless or connected packet. For
// connected packets with the COMPRESSION flag set, the chunk payload is
// Huffman-decompressed before being returned.
func Read(buf []byte) (*Packet, error) {
	if len(buf) > MaxPacketSize {
		return nil, errs.ErrPacketTooLarge
	}
	if len(buf) < headerSize {
		return nil, fmt.Errorf("packet: %w", errs.ErrUnexpectedEnd)
	}

	h := unpackHeader(buf)

	if h.flags&FlagConnless != 0 {
		if len(buf) < connlessHeaderSize {
			return nil, fmt.Errorf("packet: connless: %w", errs.ErrUnexpectedEnd)
		}
		for i := 0; i < connlessHeaderSize; i++ {
			if buf[i] != 0xff {
				return nil, fmt.Errorf("packet: connless: %w", errs.ErrMalformedPacket)
			}
		}

		return &Packet{Kind: KindConnless, Connless: buf[connlessHeaderSize:]}, nil
	}

	payload := buf[headerSize:]
	if h.flags&FlagCompression != 0 {
		decoded := huffman.Decompress(payload)
		payload = decoded
	}

	p := &Packet{
		Ack:           h.ack,
		RequestResend: h.flags&FlagRequestResend != 0,
	}

	if h.flags&FlagControl != 0 {
		if len(payload) < 1 {
			return nil, fmt.Errorf("packet: control: %w", errs.ErrMalformedPacket)
		}

		p.Kind = KindControl
		p.Control = ControlType(payload[0])

		if p.Control == ControlClose {
			reason := payload[1:]
			for i, b := range reason {
				if b == 0 {
					reason = reason[:i]

					break
				}
			}

			p.CloseReason = reason
		}

		return p, nil
	}

	p.Kind = KindChunks
	p.NumChunks = h.numChunks
	p.Payload = payload

	return p, nil
}

// Write appends the encoding of p to out, returning the extended slice.
// Connected chunk packets attempt Huffman compression and set the
// COMPRESSION flag only if it strictly shrinks the payload.
func Write(p *Packet, out []byte) ([]byte, error) {
	switch p.Kind {
	case KindConnless:
		return writeConnless(p, out)
	case KindControl:
		return writeControl(p, out)
	case KindChunks:
		return writeChunks(p, out)
	default:
		return nil, fmt.Errorf("packet: %w", errs.ErrInvalidHeader)
	}
}

func writeConnless(p *Packet, out []byte) ([]byte, error) {
	if len(p.Connless) > MaxPayloadSize {
		return nil, errs.ErrTooLongData
	}

	out = appendFF(out, connlessHeaderSize)
	out = append(out, p.Connless...)

	return out, nil
}

func appendFF(out []byte, n int) []byte {
	for i := 0; i < n; i++ {
		out = append(out, 0xff)
	}

	return out
}

func writeControl(p *Packet, out []byte) ([]byte, error) {
	h := header{flags: FlagControl, ack: p.Ack}
	if p.RequestResend {
		h.flags |= FlagRequestResend
	}

	hdr := make([]byte, headerSize)
	packHeader(h, hdr)
	out = append(out, hdr...)
	out = append(out, byte(p.Control))

	if p.Control == ControlClose {
		out = append(out, p.CloseReason...)
		out = append(out, 0)
	}

	return out, nil
}

func writeChunks(p *Packet, out []byte) ([]byte, error) {
	h := header{ack: p.Ack, numChunks: p.NumChunks}
	if p.RequestResend {
		h.flags |= FlagRequestResend
	}

	payload := p.Payload

	compressed := huffman.CompressBug(payload)
	if len(compressed) < len(payload) {
		h.flags |= FlagCompression
		payload = compressed
	}

	hdr := make([]byte, headerSize)
	packHeader(h, hdr)
	out = append(out, hdr...)
	out = append(out, payload...)

	return out, nil
}
