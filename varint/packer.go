package varint

import (
	"fmt"

	"github.com/ddnet-go/twnet/errs"
)

// MaxVarintLen is the maximum number of bytes a single encoded int32 can
// occupy on the wire.
const MaxVarintLen = 5

// Packer appends encoded fields to a caller-provided, bounded []byte. The
// buffer's capacity is the hard bound: a write that would exceed it
// returns errs.ErrCapacity and leaves the Packer's buffer byte-for-byte
// unchanged, so a caller can retry into a larger buffer without having to
// unwind partial writes.
type Packer struct {
	buf []byte
}

// NewPacker wraps buf (typically buf[:0] of some fixed-capacity array) for
// appending. The capacity of buf is the Packer's write bound.
func NewPacker(buf []byte) *Packer {
	return &Packer{buf: buf}
}

// Bytes returns the bytes written so far. The slice is valid until the
// next call to an Add method or Reset.
func (p *Packer) Bytes() []byte {
	return p.buf
}

// Len returns the number of bytes written so far.
func (p *Packer) Len() int {
	return len(p.buf)
}

// Reset rebinds the Packer to a new destination buffer, discarding any
// prior position.
func (p *Packer) Reset(buf []byte) {
	p.buf = buf
}

// appendBounded appends data to p.buf if it fits within cap(p.buf),
// otherwise returns errs.ErrCapacity without mutating p.buf.
func (p *Packer) appendBounded(data []byte) error {
	if len(p.buf)+len(data) > cap(p.buf) {
		return errs.ErrCapacity
	}
	p.buf = append(p.buf, data...)

	return nil
}

// encodeInt32 writes the Teeworlds variable-length encoding of v into a
// scratch array and returns the slice of bytes actually used.
//
// First byte: bit7 extend, bit6 sign, bits5-0 low 6 value bits.
// Following bytes: bit7 extend, bits6-0 next 7 value bits.
// Negative values are bitwise-inverted before packing; the sign bit alone
// records the original sign.
func encodeInt32(scratch *[MaxVarintLen]byte, v int32) []byte {
	u := uint32(v)
	sign := byte(0)
	if v < 0 {
		u = ^u
		sign = 0x40
	}

	n := 0
	scratch[0] = sign | byte(u&0x3f)
	u >>= 6

	for u != 0 {
		scratch[n] |= 0x80
		n++
		scratch[n] = byte(u & 0x7f)
		u >>= 7
	}
	n++

	return scratch[:n]
}

// AddInt32 encodes v and appends it to the Packer's buffer.
func (p *Packer) AddInt32(v int32) error {
	var scratch [MaxVarintLen]byte

	return p.appendBounded(encodeInt32(&scratch, v))
}

// AddString encodes s as a NUL-terminated byte sequence and appends it.
// Returns errs.ErrNulInString if s contains an embedded NUL byte; this is
// a programmer-contract violation (spec §4.A), not a recoverable one.
func (p *Packer) AddString(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			return fmt.Errorf("varint: %w", errs.ErrNulInString)
		}
	}

	if len(p.buf)+len(s)+1 > cap(p.buf) {
		return errs.ErrCapacity
	}
	p.buf = append(p.buf, s...)
	p.buf = append(p.buf, 0)

	return nil
}

// AddData encodes data as a varint length prefix followed by the raw
// bytes, and appends it.
func (p *Packer) AddData(data []byte) error {
	var scratch [MaxVarintLen]byte
	lengthBytes := encodeInt32(&scratch, int32(len(data)))

	if len(p.buf)+len(lengthBytes)+len(data) > cap(p.buf) {
		return errs.ErrCapacity
	}
	p.buf = append(p.buf, lengthBytes...)
	p.buf = append(p.buf, data...)

	return nil
}

// AddRaw appends data verbatim, with no length prefix or framing. Used for
// fixed-size fields (UUIDs, SHA-256 digests, raw trailing payloads).
func (p *Packer) AddRaw(data []byte) error {
	return p.appendBounded(data)
}
