package varint

import (
	"fmt"

	"github.com/ddnet-go/twnet/errs"
	"github.com/ddnet-go/twnet/warn"
)

// Unpacker walks a []byte left to right, decoding varints, NUL-terminated
// strings, length-prefixed data blobs and raw fixed-size fields. Every
// recoverable oddity is reported through a warn.Sink[Warning]; only a
// buffer that ends mid-field (errs.ErrUnexpectedEnd) or a data blob with a
// negative length (errs.ErrNegativeLength) is fatal.
type Unpacker struct {
	buf []byte
	pos int
}

// NewUnpacker creates an Unpacker positioned at the start of buf.
func NewUnpacker(buf []byte) *Unpacker {
	return &Unpacker{buf: buf}
}

// Remaining returns the bytes not yet consumed.
func (u *Unpacker) Remaining() []byte {
	return u.buf[u.pos:]
}

// Pos returns the current read offset.
func (u *Unpacker) Pos() int {
	return u.pos
}

// Done reports whether every byte has been consumed.
func (u *Unpacker) Done() bool {
	return u.pos >= len(u.buf)
}

// Finish reports, via sink, whether bytes remain unconsumed (spec §4.A:
// "Finish optionally warns ExcessData if bytes remain").
func (u *Unpacker) Finish(sink warn.Sink[Warning]) {
	if u.pos < len(u.buf) {
		sink.Warn(Warning{Kind: ExcessData, Offset: u.pos})
	}
}

// NextInt32 decodes one variable-length signed 32-bit integer.
func (u *Unpacker) NextInt32(sink warn.Sink[Warning]) (int32, error) {
	start := u.pos

	if u.pos >= len(u.buf) {
		return 0, fmt.Errorf("varint: int32 at %d: %w", start, errs.ErrUnexpectedEnd)
	}

	b0 := u.buf[u.pos]
	u.pos++

	sign := uint32(0)
	if b0&0x40 != 0 {
		sign = 0xffffffff
	}

	value := uint32(b0 & 0x3f)
	extend := b0&0x80 != 0
	shift := uint(6)

	for i := 0; extend && i < 4; i++ {
		if u.pos >= len(u.buf) {
			return 0, fmt.Errorf("varint: int32 at %d: %w", start, errs.ErrUnexpectedEnd)
		}
		b := u.buf[u.pos]
		u.pos++

		if b == 0 {
			sink.Warn(Warning{Kind: OverlongIntEncoding, Offset: start})
		}
		if i == 3 && b&0x60 != 0 {
			sink.Warn(Warning{Kind: NonZeroPadding, Offset: start})
		}

		value |= uint32(b&0x7f) << shift
		shift += 7
		extend = b&0x80 != 0
	}

	return int32(value ^ sign), nil
}

// NextString returns the bytes up to (not including) the next NUL byte,
// advancing past the NUL.
func (u *Unpacker) NextString() ([]byte, error) {
	rest := u.buf[u.pos:]
	for i, b := range rest {
		if b == 0 {
			u.pos += i + 1

			return rest[:i], nil
		}
	}

	return nil, fmt.Errorf("varint: string at %d: %w", u.pos, errs.ErrUnexpectedEnd)
}

// NextData decodes a varint length prefix followed by that many raw
// bytes. Returns errs.ErrNegativeLength if the decoded length is negative.
func (u *Unpacker) NextData(sink warn.Sink[Warning]) ([]byte, error) {
	start := u.pos

	length, err := u.NextInt32(sink)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, fmt.Errorf("varint: data at %d: %w", start, errs.ErrNegativeLength)
	}
	if u.pos+int(length) > len(u.buf) {
		return nil, fmt.Errorf("varint: data at %d: %w", start, errs.ErrUnexpectedEnd)
	}

	data := u.buf[u.pos : u.pos+int(length)]
	u.pos += int(length)

	return data, nil
}

// NextRaw consumes and returns exactly n raw bytes with no framing.
func (u *Unpacker) NextRaw(n int) ([]byte, error) {
	if u.pos+n > len(u.buf) {
		return nil, fmt.Errorf("varint: raw at %d: %w", u.pos, errs.ErrUnexpectedEnd)
	}
	data := u.buf[u.pos : u.pos+n]
	u.pos += n

	return data, nil
}
